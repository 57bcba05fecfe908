package hashmap

import (
	"iter"

	"github.com/elliottback/flatmap/anyhash"
)

type slotState uint8

const (
	// slotEmpty marks a slot that has held nothing since the
	// table was last allocated or cleared. It terminates a probe.
	slotEmpty slotState = iota

	// slotTombstone marks a slot whose entry has been deleted.
	// Probes continue past it; inserts may reuse it.
	slotTombstone

	slotOccupied
)

type slot[K, V any] struct {
	state slotState
	entry Entry[K, V]
}

// probeTable is the open-addressing table behind ProbingMap and Set.
type probeTable[K, V any, H anyhash.Hasher[K]] struct {
	keys  keyer[K, H]
	slots []slot[K, V]

	// size holds the number of occupied slots.
	size int

	// tombs holds the number of tombstone slots.
	tombs int

	onGrow func(oldCap, newCap int)
}

func makeProbeTable[K, V any, H anyhash.Hasher[K]](h H, capacity int, onGrow func(int, int)) probeTable[K, V, H] {
	return probeTable[K, V, H]{
		keys:   newKeyer[K](h),
		slots:  make([]slot[K, V], capacity),
		onGrow: onGrow,
	}
}

// Len returns the number of entries in the map.
func (t *probeTable[K, V, H]) Len() int {
	return t.size
}

// IsEmpty reports whether the map holds no entries.
func (t *probeTable[K, V, H]) IsEmpty() bool {
	return t.size == 0
}

// Cap returns the number of slots in the table.
func (t *probeTable[K, V, H]) Cap() int {
	return len(t.slots)
}

// lookup probes for k starting at its hash slot. If k is present
// it returns its slot and true. Otherwise it returns the slot an
// insert of k should use (the first tombstone passed, else the
// empty slot that ended the probe) and false; that slot is -1 when
// the probe wrapped the whole table without finding either.
func (t *probeTable[K, V, H]) lookup(k K) (int, bool) {
	n := len(t.slots)
	start := t.keys.index(k, n)
	free := -1
	for i := 0; i < n; i++ {
		pos := (start + i) % n
		s := &t.slots[pos]
		switch s.state {
		case slotEmpty:
			if free < 0 {
				free = pos
			}
			return free, false
		case slotTombstone:
			if free < 0 {
				free = pos
			}
		case slotOccupied:
			if t.keys.equal(s.entry.key, k) {
				return pos, true
			}
		}
	}
	return free, false
}

// Has reports whether k is present in the map.
func (t *probeTable[K, V, H]) Has(k K) bool {
	_, ok := t.lookup(k)
	return ok
}

// Get returns the value for k and reports whether it was found.
func (t *probeTable[K, V, H]) Get(k K) (V, bool) {
	if pos, ok := t.lookup(k); ok {
		return t.slots[pos].entry.value, true
	}
	return *new(V), false
}

// At returns the value for k, or the zero value of V if not present.
func (t *probeTable[K, V, H]) At(k K) V {
	v, _ := t.Get(k)
	return v
}

// Put sets the value for k to v, returning the previous value
// and whether there was one.
//
// When no empty slot remains the table is rehashed first, so the
// probe that follows always ends.
func (t *probeTable[K, V, H]) Put(k K, v V) (prev V, replaced bool) {
	if t.size+t.tombs >= len(t.slots) {
		t.grow()
	}
	pos, ok := t.lookup(k)
	if ok {
		e := &t.slots[pos].entry
		prev, e.value = e.value, v
		return prev, true
	}
	if pos < 0 {
		invariantf("no free slot for new key in table of %d slots (%d live, %d tombstones)", len(t.slots), t.size, t.tombs)
	}
	if t.slots[pos].state == slotTombstone {
		t.tombs--
	}
	t.slots[pos] = slot[K, V]{
		state: slotOccupied,
		entry: Entry[K, V]{key: k, value: v},
	}
	t.size++
	return prev, false
}

// Delete removes the entry with key k, if present, and reports
// whether it was found. The slot becomes a tombstone so that keys
// placed beyond it by earlier collisions stay reachable.
func (t *probeTable[K, V, H]) Delete(k K) (old V, ok bool) {
	pos, ok := t.lookup(k)
	if !ok {
		return old, false
	}
	old = t.slots[pos].entry.value
	t.slots[pos] = slot[K, V]{state: slotTombstone}
	t.size--
	t.tombs++
	return old, true
}

// Clear empties every slot. The capacity is unchanged.
func (t *probeTable[K, V, H]) Clear() {
	clear(t.slots)
	t.size = 0
	t.tombs = 0
}

// All returns an iterator over (key, value) pairs in slot order.
func (t *probeTable[K, V, H]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if s.state != slotOccupied {
				continue
			}
			if !yield(s.entry.key, s.entry.value) {
				return
			}
		}
	}
}

// grow makes room for at least one more entry. Tombstones count
// against room, so when they outnumber live entries the table is
// rebuilt at the same size instead of doubling.
func (t *probeTable[K, V, H]) grow() {
	n := len(t.slots)
	if t.tombs > t.size {
		t.rehash(n)
		return
	}
	t.rehash(2 * n)
	if t.onGrow != nil {
		t.onGrow(n, 2*n)
	}
}

// rehash moves every live entry into a new table of n slots,
// dropping tombstones.
func (t *probeTable[K, V, H]) rehash(n int) {
	old := t.slots
	t.slots = make([]slot[K, V], n)
	t.size = 0
	t.tombs = 0
	for i := range old {
		if old[i].state == slotOccupied {
			t.place(old[i].entry)
		}
	}
}

// place stores e, whose key is known to be absent, in the first
// empty slot of its probe sequence.
func (t *probeTable[K, V, H]) place(e Entry[K, V]) {
	n := len(t.slots)
	start := t.keys.index(e.key, n)
	for i := 0; i < n; i++ {
		pos := (start + i) % n
		if t.slots[pos].state == slotEmpty {
			t.slots[pos] = slot[K, V]{state: slotOccupied, entry: e}
			t.size++
			return
		}
	}
	invariantf("rehash into %d slots found no empty slot after %d entries", n, t.size)
}

// ProbingMap is a hash map using open addressing with linear
// probing that wraps around the end of the slot array. The array
// doubles when it has no empty slot left.
//
// Deleted slots are marked with tombstones rather than emptied, so
// a deletion never cuts the probe sequence of a key that collided
// with the deleted one.
//
// The zero ProbingMap is not usable; use [NewProbingMap].
type ProbingMap[K, V any, H anyhash.Hasher[K]] struct {
	probeTable[K, V, H]
	valueEqual func(x, y V) bool
}

var _ Map[string, int] = (*ProbingMap[string, int, anyhash.StringHasher])(nil)

// NewProbingMap returns a new empty ProbingMap using h to hash and
// compare keys. The options may be nil.
func NewProbingMap[K, V any, H anyhash.Hasher[K]](h H, opts *Options[V]) *ProbingMap[K, V, H] {
	return &ProbingMap[K, V, H]{
		probeTable: makeProbeTable[K, V](h, opts.capacity(), opts.onGrow()),
		valueEqual: opts.valueEqual(),
	}
}

// KeySet returns a snapshot of the keys in the map.
func (m *ProbingMap[K, V, H]) KeySet() *Set[K] {
	return keySet[K, V](m.keys.hasher, m)
}

// Values returns a snapshot of the values in the map.
func (m *ProbingMap[K, V, H]) Values() []V {
	return values[K, V](m)
}

// EntrySet returns a snapshot of the entries in the map.
func (m *ProbingMap[K, V, H]) EntrySet() *Set[Entry[K, V]] {
	return entrySet[K, V](m.keys.hasher, m)
}

// ContainsValue reports whether any entry holds a value equal to v.
// It scans every slot.
func (m *ProbingMap[K, V, H]) ContainsValue(v V) bool {
	return containsValue[K, V](m, v, m.valueEqual)
}

// PutAll puts every entry of src into m. It is not atomic: if a
// put panics, the entries put before it remain.
func (m *ProbingMap[K, V, H]) PutAll(src Enumerator[K, V]) {
	putAll[K, V](m, src)
}
