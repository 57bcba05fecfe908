// Package anyhash defines the hash functions and equivalence
// relations used to key the maps in this module.
package anyhash

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// A Hasher defines a hash function and an equivalence relation over
// values of type T.
//
// Hash and Equal must be consistent: if Equal(x, y) is true then
// Hash must return the same value for x and y given the same seed.
// A Hasher may ignore the seed, in which case its hashes are stable
// across processes.
type Hasher[T any] interface {
	Hash(seed maphash.Seed, x T) uint64
	Equal(x, y T) bool
}

// ComparableHasher is an implementation of [Hasher] for comparable types.
// Its Equal(x, y) method is consistent with x == y.
type ComparableHasher[T comparable] struct {
	_ [0]func(T) // disallow comparison, and conversion between ComparableHasher[X] and ComparableHasher[Y]
}

func (ComparableHasher[T]) Hash(seed maphash.Seed, x T) uint64 { return maphash.Comparable(seed, x) }
func (ComparableHasher[T]) Equal(x, y T) bool                  { return x == y }

// StringHasher hashes strings with xxhash. It ignores the seed.
type StringHasher struct{}

func (StringHasher) Hash(_ maphash.Seed, s string) uint64 { return xxhash.Sum64String(s) }
func (StringHasher) Equal(x, y string) bool               { return x == y }

// BytesHasher hashes byte slices by content with xxhash. It ignores the seed.
type BytesHasher struct{}

func (BytesHasher) Hash(_ maphash.Seed, b []byte) uint64 { return xxhash.Sum64(b) }
func (BytesHasher) Equal(x, y []byte) bool               { return bytes.Equal(x, y) }

// PtrHasher hashes pointers by the value they point to, using H.
// Two pointers are equal when both are nil or their pointees are equal
// according to H.
type PtrHasher[T any, H Hasher[T]] struct {
	H H
}

func (p PtrHasher[T, H]) Hash(seed maphash.Seed, x *T) uint64 {
	if x == nil {
		return 0
	}
	return p.H.Hash(seed, *x)
}

func (p PtrHasher[T, H]) Equal(x, y *T) bool {
	if x == nil || y == nil {
		return x == y
	}
	return p.H.Equal(*x, *y)
}
