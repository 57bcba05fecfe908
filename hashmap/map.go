// Package hashmap implements associative arrays over raw backing
// slices, without using Go's built-in map type.
//
// Two representations are provided. [ProbingMap] uses open
// addressing: one entry per slot, found by probing linearly from the
// key's hash slot and wrapping around the end of the table.
// [ChainedMap] uses separate chaining: each bucket holds a short
// ordered sequence of entries and the bucket array doubles when the
// average bucket length reaches a threshold.
//
// Both implement [Map]. Their derived views (key set, values, entry
// set, value search, bulk insert) are written once in terms of the
// [Enumerator] capability.
//
// A nil value of a nilable key type (pointer, interface, slice, map,
// func or chan) is a valid key: the null key. At most one null key
// is present in a map and it always hashes to slot or bucket 0. The
// null key is never passed to the map's [anyhash.Hasher].
//
// None of the types in this package are safe for concurrent use.
package hashmap

import (
	"hash/maphash"
	"iter"
	"reflect"

	"github.com/elliottback/flatmap/anyhash"
)

const (
	// DefaultCapacity is the initial backing length of a map
	// created without an explicit capacity.
	DefaultCapacity = 32

	// DefaultMaxLoad is the average bucket length at which a
	// ChainedMap doubles its bucket array.
	DefaultMaxLoad = 64
)

// Enumerator is implemented by maps that can enumerate their
// live entries.
type Enumerator[K, V any] interface {
	// All returns an iterator over all live entries in
	// unspecified order.
	All() iter.Seq2[K, V]

	// Len returns the number of live entries.
	Len() int
}

// Map is the contract shared by ProbingMap and ChainedMap.
type Map[K, V any] interface {
	Enumerator[K, V]

	// IsEmpty reports whether Len() == 0.
	IsEmpty() bool

	// Cap returns the length of the backing storage.
	Cap() int

	// Has reports whether k is present.
	Has(k K) bool

	// Get returns the value for k and reports whether
	// k was present. A present key may hold a zero value.
	Get(k K) (V, bool)

	// At returns the value for k, or the zero value if
	// k is not present.
	At(k K) V

	// Put sets the value for k to v. If k was already present
	// it returns the previous value and true.
	Put(k K, v V) (prev V, replaced bool)

	// Delete removes k, returning its value and whether
	// it was present.
	Delete(k K) (old V, ok bool)

	// Clear removes all entries. The capacity is unchanged.
	Clear()

	// KeySet returns a snapshot of the keys.
	KeySet() *Set[K]

	// Values returns a snapshot of the values, one per entry.
	Values() []V

	// EntrySet returns a snapshot of the entries.
	EntrySet() *Set[Entry[K, V]]

	// ContainsValue reports whether any entry holds a value
	// equal to v.
	ContainsValue(v V) bool

	// PutAll puts every entry of src.
	PutAll(src Enumerator[K, V])
}

// Options holds optional parameters for a map. A nil *Options
// is equivalent to the zero Options.
type Options[V any] struct {
	// Capacity holds the initial backing length.
	// Zero means DefaultCapacity; other values less than
	// one are treated as one.
	Capacity int

	// MaxLoad holds the average bucket length at which a
	// ChainedMap grows. Zero or less means DefaultMaxLoad.
	// ProbingMap ignores it.
	MaxLoad float64

	// ValueEqual is used by ContainsValue to compare values.
	// If it is nil, reflect.DeepEqual is used.
	ValueEqual func(x, y V) bool

	// OnGrow, if non-nil, is called after the backing storage
	// has been doubled.
	OnGrow func(oldCap, newCap int)
}

func (o *Options[V]) capacity() int {
	switch {
	case o == nil || o.Capacity == 0:
		return DefaultCapacity
	case o.Capacity < 1:
		return 1
	}
	return o.Capacity
}

func (o *Options[V]) maxLoad() float64 {
	if o == nil || o.MaxLoad <= 0 {
		return DefaultMaxLoad
	}
	return o.MaxLoad
}

func (o *Options[V]) valueEqual() func(x, y V) bool {
	if o == nil || o.ValueEqual == nil {
		return func(x, y V) bool {
			return reflect.DeepEqual(x, y)
		}
	}
	return o.ValueEqual
}

func (o *Options[V]) onGrow() func(oldCap, newCap int) {
	if o == nil {
		return nil
	}
	return o.OnGrow
}

// keyer maps keys to backing indexes and compares them,
// taking care of the null key.
type keyer[K any, H anyhash.Hasher[K]] struct {
	hasher  H
	seed    maphash.Seed
	nilable bool
}

func newKeyer[K any, H anyhash.Hasher[K]](h H) keyer[K, H] {
	return keyer[K, H]{
		hasher:  h,
		seed:    maphash.MakeSeed(),
		nilable: nilable[K](),
	}
}

func (kr *keyer[K, H]) isNull(k K) bool {
	return kr.nilable && isNil(k)
}

// index returns the slot or bucket of k in a table of length n.
func (kr *keyer[K, H]) index(k K, n int) int {
	if kr.isNull(k) {
		return 0
	}
	return int(kr.hasher.Hash(kr.seed, k) % uint64(n))
}

func (kr *keyer[K, H]) equal(x, y K) bool {
	if !kr.nilable {
		return kr.hasher.Equal(x, y)
	}
	return keysEqual[K](kr.hasher, x, y)
}

// keysEqual compares x and y with h, treating two null keys
// as equal and never passing a null key to h.
func keysEqual[K any](h anyhash.Hasher[K], x, y K) bool {
	xn, yn := isNil(x), isNil(y)
	if xn || yn {
		return xn && yn
	}
	return h.Equal(x, y)
}

func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

// isNil reports whether x is the nil value of a nilable type.
func isNil[T any](x T) bool {
	v := reflect.ValueOf(&x).Elem()
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
