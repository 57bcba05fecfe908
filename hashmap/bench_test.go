package hashmap_test

import (
	"strconv"
	"testing"

	"github.com/elliottback/flatmap/anyhash"
	"github.com/elliottback/flatmap/hashmap"
)

var benchKeys = func() []string {
	keys := make([]string, 1<<16)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}()

func benchmarkPut(b *testing.B, m hashmap.Map[string, int]) {
	for i := range b.N {
		m.Put(benchKeys[i&(len(benchKeys)-1)], i)
	}
}

func benchmarkGet(b *testing.B, m hashmap.Map[string, int]) {
	for i, k := range benchKeys {
		m.Put(k, i)
	}
	b.ResetTimer()
	for i := range b.N {
		m.Get(benchKeys[i&(len(benchKeys)-1)])
	}
}

func BenchmarkProbingPut(b *testing.B) {
	benchmarkPut(b, hashmap.NewProbingMap[string, int](anyhash.StringHasher{}, nil))
}

func BenchmarkChainedPut(b *testing.B) {
	benchmarkPut(b, hashmap.NewChainedMap[string, int](anyhash.StringHasher{}, &hashmap.Options[int]{MaxLoad: 1}))
}

func BenchmarkProbingGet(b *testing.B) {
	benchmarkGet(b, hashmap.NewProbingMap[string, int](anyhash.StringHasher{}, nil))
}

func BenchmarkChainedGet(b *testing.B) {
	benchmarkGet(b, hashmap.NewChainedMap[string, int](anyhash.StringHasher{}, &hashmap.Options[int]{MaxLoad: 1}))
}
