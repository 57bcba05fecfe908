package hashmap

import (
	"iter"

	"github.com/elliottback/flatmap/anyhash"
)

// Set is an immutable snapshot of distinct values, as returned by
// KeySet and EntrySet. It is held in its own probing table and
// shares no storage with the map it was taken from.
type Set[T any] struct {
	t probeTable[T, struct{}, anyhash.Hasher[T]]
}

func newSet[T any](h anyhash.Hasher[T], n int) *Set[T] {
	// Twice the element count leaves the probes short.
	return &Set[T]{
		t: makeProbeTable[T, struct{}](h, max(2*n, 1), nil),
	}
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return s.t.Len()
}

// Has reports whether the set holds an element equal to x.
func (s *Set[T]) Has(x T) bool {
	return s.t.Has(x)
}

// All returns an iterator over the elements in unspecified order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range s.t.All() {
			if !yield(x) {
				return
			}
		}
	}
}

// Slice returns the elements in unspecified order.
func (s *Set[T]) Slice() []T {
	xs := make([]T, 0, s.Len())
	for x := range s.All() {
		xs = append(xs, x)
	}
	return xs
}

func keySet[K, V any](h anyhash.Hasher[K], m Enumerator[K, V]) *Set[K] {
	s := newSet(h, m.Len())
	for k := range m.All() {
		s.t.Put(k, struct{}{})
	}
	return s
}

func values[K, V any](m Enumerator[K, V]) []V {
	vs := make([]V, 0, m.Len())
	for _, v := range m.All() {
		vs = append(vs, v)
	}
	return vs
}

func entrySet[K, V any, H anyhash.Hasher[K]](h H, m Enumerator[K, V]) *Set[Entry[K, V]] {
	s := newSet[Entry[K, V]](EntryHasher[K, V, H]{H: h}, m.Len())
	for k, v := range m.All() {
		s.t.Put(Entry[K, V]{key: k, value: v}, struct{}{})
	}
	return s
}

func containsValue[K, V any](m Enumerator[K, V], v V, eq func(x, y V) bool) bool {
	for _, x := range m.All() {
		if eq(x, v) {
			return true
		}
	}
	return false
}

type putter[K, V any] interface {
	Put(k K, v V) (V, bool)
}

// putAll copies src's entries before putting them, so dst may
// be src itself.
func putAll[K, V any](dst putter[K, V], src Enumerator[K, V]) {
	entries := make([]Entry[K, V], 0, src.Len())
	for k, v := range src.All() {
		entries = append(entries, Entry[K, V]{key: k, value: v})
	}
	for _, e := range entries {
		dst.Put(e.key, e.value)
	}
}
