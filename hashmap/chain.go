package hashmap

import (
	"iter"
	"slices"

	"github.com/elliottback/flatmap/anyhash"
)

// ChainedMap is a hash map using separate chaining. Each bucket
// holds its entries in insertion order; the bucket array doubles
// when the average bucket length reaches the map's maximum load.
//
// The zero ChainedMap is not usable; use [NewChainedMap].
type ChainedMap[K, V any, H anyhash.Hasher[K]] struct {
	keys    keyer[K, H]
	buckets [][]Entry[K, V]
	size    int
	maxLoad float64

	valueEqual func(x, y V) bool
	onGrow     func(oldCap, newCap int)
}

var _ Map[string, int] = (*ChainedMap[string, int, anyhash.StringHasher])(nil)

// NewChainedMap returns a new empty ChainedMap using h to hash and
// compare keys. The options may be nil.
func NewChainedMap[K, V any, H anyhash.Hasher[K]](h H, opts *Options[V]) *ChainedMap[K, V, H] {
	return &ChainedMap[K, V, H]{
		keys:       newKeyer[K](h),
		buckets:    make([][]Entry[K, V], opts.capacity()),
		maxLoad:    opts.maxLoad(),
		valueEqual: opts.valueEqual(),
		onGrow:     opts.onGrow(),
	}
}

// Len returns the number of entries in the map.
func (m *ChainedMap[K, V, H]) Len() int {
	return m.size
}

// IsEmpty reports whether the map holds no entries.
func (m *ChainedMap[K, V, H]) IsEmpty() bool {
	return m.size == 0
}

// Cap returns the number of buckets.
func (m *ChainedMap[K, V, H]) Cap() int {
	return len(m.buckets)
}

// Load returns the average number of entries per bucket.
func (m *ChainedMap[K, V, H]) Load() float64 {
	return float64(m.size) / float64(len(m.buckets))
}

// find returns the bucket index for k and the position of k
// within that bucket, or -1 if k is absent.
func (m *ChainedMap[K, V, H]) find(k K) (int, int) {
	i := m.keys.index(k, len(m.buckets))
	for j := range m.buckets[i] {
		if m.keys.equal(m.buckets[i][j].key, k) {
			return i, j
		}
	}
	return i, -1
}

// Has reports whether k is present in the map.
func (m *ChainedMap[K, V, H]) Has(k K) bool {
	_, j := m.find(k)
	return j >= 0
}

// Get returns the value for k and reports whether it was found.
func (m *ChainedMap[K, V, H]) Get(k K) (V, bool) {
	i, j := m.find(k)
	if j < 0 {
		return *new(V), false
	}
	return m.buckets[i][j].value, true
}

// At returns the value for k, or the zero value of V if not present.
func (m *ChainedMap[K, V, H]) At(k K) V {
	v, _ := m.Get(k)
	return v
}

// Put sets the value for k to v, returning the previous value
// and whether there was one. A replaced entry moves to the end
// of its bucket.
func (m *ChainedMap[K, V, H]) Put(k K, v V) (prev V, replaced bool) {
	if m.Load() >= m.maxLoad {
		m.grow()
	}
	i, j := m.find(k)
	if j >= 0 {
		prev = m.buckets[i][j].value
		b := slices.Delete(m.buckets[i], j, j+1)
		m.buckets[i] = append(b, Entry[K, V]{key: k, value: v})
		return prev, true
	}
	m.buckets[i] = append(m.buckets[i], Entry[K, V]{key: k, value: v})
	m.size++
	return prev, false
}

// Delete removes the entry with key k, if present, and reports
// whether it was found.
func (m *ChainedMap[K, V, H]) Delete(k K) (old V, ok bool) {
	i, j := m.find(k)
	if j < 0 {
		return old, false
	}
	old = m.buckets[i][j].value
	m.buckets[i] = slices.Delete(m.buckets[i], j, j+1)
	m.size--
	return old, true
}

// Clear empties every bucket. The capacity is unchanged.
func (m *ChainedMap[K, V, H]) Clear() {
	clear(m.buckets)
	m.size = 0
}

// All returns an iterator over (key, value) pairs in bucket order.
func (m *ChainedMap[K, V, H]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, b := range m.buckets {
			for _, e := range b {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// grow doubles the bucket array and redistributes the entries.
func (m *ChainedMap[K, V, H]) grow() {
	old := m.buckets
	n := 2 * len(old)
	m.buckets = make([][]Entry[K, V], n)
	for _, b := range old {
		for _, e := range b {
			i := m.keys.index(e.key, n)
			m.buckets[i] = append(m.buckets[i], e)
		}
	}
	if m.onGrow != nil {
		m.onGrow(len(old), n)
	}
}

// KeySet returns a snapshot of the keys in the map.
func (m *ChainedMap[K, V, H]) KeySet() *Set[K] {
	return keySet[K, V](m.keys.hasher, m)
}

// Values returns a snapshot of the values in the map.
func (m *ChainedMap[K, V, H]) Values() []V {
	return values[K, V](m)
}

// EntrySet returns a snapshot of the entries in the map.
func (m *ChainedMap[K, V, H]) EntrySet() *Set[Entry[K, V]] {
	return entrySet[K, V](m.keys.hasher, m)
}

// ContainsValue reports whether any entry holds a value equal to v.
// It scans every bucket.
func (m *ChainedMap[K, V, H]) ContainsValue(v V) bool {
	return containsValue[K, V](m, v, m.valueEqual)
}

// PutAll puts every entry of src into m. It is not atomic: if a
// put panics, the entries put before it remain.
func (m *ChainedMap[K, V, H]) PutAll(src Enumerator[K, V]) {
	putAll[K, V](m, src)
}
