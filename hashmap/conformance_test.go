package hashmap_test

import (
	"testing"

	"github.com/elliottback/flatmap/hashmap"
	"github.com/elliottback/flatmap/hashmap/maptest"
)

func TestProbingMapConformance(t *testing.T) {
	maptest.Run(t, func() maptest.StringMap {
		return hashmap.NewProbingMap[*string, *string](maptest.Hasher{}, nil)
	})
}

func TestChainedMapConformance(t *testing.T) {
	maptest.Run(t, func() maptest.StringMap {
		return hashmap.NewChainedMap[*string, *string](maptest.Hasher{}, nil)
	})
}

func TestChainedMapConformanceLowLoad(t *testing.T) {
	maptest.Run(t, func() maptest.StringMap {
		return hashmap.NewChainedMap[*string, *string](maptest.Hasher{}, &hashmap.Options[*string]{
			MaxLoad: 0.75,
		})
	})
}
