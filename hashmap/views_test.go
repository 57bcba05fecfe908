package hashmap_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elliottback/flatmap/anyhash"
	"github.com/elliottback/flatmap/hashmap"
)

func TestKeySet(t *testing.T) {
	for _, impl := range implementations[string, int](collidingHasher{}) {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.new(nil)
			m.Put("one", 1)
			m.Put("two", 2)
			m.Put("three", 3)

			keys := m.KeySet()
			qt.Assert(t, qt.Equals(keys.Len(), 3))
			qt.Assert(t, qt.IsTrue(keys.Has("two")))
			qt.Assert(t, qt.IsFalse(keys.Has("four")))

			got := keys.Slice()
			slices.Sort(got)
			qt.Assert(t, qt.DeepEquals(got, []string{"one", "three", "two"}))
		})
	}
}

func TestValues(t *testing.T) {
	for _, impl := range implementations[string, int](anyhash.StringHasher{}) {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.new(nil)
			qt.Assert(t, qt.HasLen(m.Values(), 0))

			m.Put("a", 1)
			m.Put("b", 2)
			m.Put("c", 1)
			got := m.Values()
			slices.Sort(got)
			qt.Assert(t, qt.DeepEquals(got, []int{1, 1, 2}))
		})
	}
}

func TestEntrySet(t *testing.T) {
	for _, impl := range implementations[string, int](anyhash.StringHasher{}) {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.new(nil)
			m.Put("a", 1)
			m.Put("b", 2)

			entries := m.EntrySet()
			qt.Assert(t, qt.Equals(entries.Len(), 2))
			qt.Assert(t, qt.IsTrue(entries.Has(hashmap.NewEntry("a", 1))))
			qt.Assert(t, qt.IsTrue(entries.Has(hashmap.NewEntry("a", 99))))
			qt.Assert(t, qt.IsFalse(entries.Has(hashmap.NewEntry("c", 1))))

			var got []string
			for e := range entries.All() {
				got = append(got, e.String())
			}
			slices.Sort(got)
			qt.Assert(t, qt.DeepEquals(got, []string{"a=1", "b=2"}))
		})
	}
}

func TestContainsValueFunc(t *testing.T) {
	for _, impl := range implementations[int, string](anyhash.ComparableHasher[int]{}) {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.new(&hashmap.Options[string]{
				ValueEqual: strings.EqualFold,
			})
			m.Put(1, "Hello")
			qt.Assert(t, qt.IsTrue(m.ContainsValue("hello")))
			qt.Assert(t, qt.IsFalse(m.ContainsValue("world")))
		})
	}
}

func TestPutAllAcrossImplementations(t *testing.T) {
	src := hashmap.NewChainedMap[string, int](anyhash.StringHasher{}, nil)
	for i, k := range []string{"a", "b", "c"} {
		src.Put(k, i)
	}
	dst := hashmap.NewProbingMap[string, int](anyhash.StringHasher{}, &hashmap.Options[int]{Capacity: 2})
	dst.Put("a", 100)
	dst.Put("z", 26)

	dst.PutAll(src)
	qt.Assert(t, qt.Equals(dst.Len(), 4))
	qt.Assert(t, qt.Equals(dst.At("a"), 0))
	qt.Assert(t, qt.Equals(dst.At("c"), 2))
	qt.Assert(t, qt.Equals(dst.At("z"), 26))

	back := hashmap.NewChainedMap[string, int](anyhash.StringHasher{}, nil)
	back.PutAll(dst)
	qt.Assert(t, qt.Equals(back.Len(), 4))
	qt.Assert(t, qt.Equals(back.At("z"), 26))
}

func TestPutAllSelf(t *testing.T) {
	for _, impl := range implementations[string, int](anyhash.StringHasher{}) {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.new(nil)
			m.Put("a", 1)
			m.Put("b", 2)
			m.PutAll(m)
			qt.Assert(t, qt.Equals(m.Len(), 2))
			qt.Assert(t, qt.Equals(m.At("b"), 2))
		})
	}
}
