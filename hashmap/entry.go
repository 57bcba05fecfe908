package hashmap

import (
	"fmt"
	"hash/maphash"

	"github.com/elliottback/flatmap/anyhash"
)

// Entry is a key/value association. Entries compare and hash
// by key only; see [EntryHasher].
type Entry[K, V any] struct {
	key   K
	value V
}

// NewEntry returns an entry associating k with v.
func NewEntry[K, V any](k K, v V) Entry[K, V] {
	return Entry[K, V]{key: k, value: v}
}

// Key returns the entry's key.
func (e Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's value.
func (e Entry[K, V]) Value() V {
	return e.value
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.key, e.value)
}

// EntryHasher adapts a key hasher to entries: the value
// takes no part in hashing or equality.
type EntryHasher[K, V any, H anyhash.Hasher[K]] struct {
	H H
}

func (eh EntryHasher[K, V, H]) Hash(seed maphash.Seed, e Entry[K, V]) uint64 {
	if isNil(e.key) {
		return 0
	}
	return eh.H.Hash(seed, e.key)
}

func (eh EntryHasher[K, V, H]) Equal(x, y Entry[K, V]) bool {
	return keysEqual[K](eh.H, x.key, y.key)
}
