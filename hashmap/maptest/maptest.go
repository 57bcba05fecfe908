// Package maptest provides a black-box conformance suite for
// implementations of hashmap.Map.
package maptest

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/elliottback/flatmap/hashmap"
)

// StringMap is the map type exercised by the suite. Keys compare
// by the string they point to; a nil key is the null key.
type StringMap = hashmap.Map[*string, *string]

// Str returns a pointer to a copy of s.
func Str(s string) *string {
	return &s
}

// Run runs the conformance suite against maps returned by newMap.
// Each call to newMap must return a new, empty map with the
// default initial capacity.
func Run(t *testing.T, newMap func() StringMap) {
	tests := []struct {
		name string
		f    func(*testing.T, StringMap)
	}{
		{"NullKeys", testNullKeys},
		{"NullValues", testNullValues},
		{"PastInitialCapacity", testPastInitialCapacity},
		{"DuplicateKeys", testDuplicateKeys},
		{"MissingKey", testMissingKey},
		{"DeleteAbsent", testDeleteAbsent},
		{"KeySet", testKeySet},
		{"EntrySet", testEntrySet},
		{"Values", testValues},
		{"ViewsAreSnapshots", testViewsAreSnapshots},
		{"PutAll", testPutAll},
		{"RandomOps", testRandomOps},
		{"MillionEntries", testMillionEntries},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.f(t, newMap())
		})
	}
}

func fill(m StringMap, n int) {
	for i := range n {
		m.Put(Str(fmt.Sprint(i)), Str(fmt.Sprintf("v: %d", i)))
	}
}

// There can only be one null key.
func testNullKeys(t *testing.T, m StringMap) {
	prev, replaced := m.Put(nil, Str("abc"))
	qt.Assert(t, qt.IsNil(prev))
	qt.Assert(t, qt.IsFalse(replaced))
	qt.Assert(t, qt.DeepEquals(m.At(nil), Str("abc")))
	qt.Assert(t, qt.IsTrue(m.Has(nil)))
	qt.Assert(t, qt.Equals(m.Len(), 1))

	old, ok := m.Delete(nil)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(old, Str("abc")))
	qt.Assert(t, qt.Equals(m.Len(), 0))
	qt.Assert(t, qt.IsFalse(m.Has(nil)))

	m.Put(nil, Str("abc"))
	prev, replaced = m.Put(nil, Str("def"))
	qt.Assert(t, qt.IsTrue(replaced))
	qt.Assert(t, qt.DeepEquals(prev, Str("abc")))
	qt.Assert(t, qt.DeepEquals(m.At(nil), Str("def")))
	qt.Assert(t, qt.Equals(m.Len(), 1))

	old, ok = m.Delete(nil)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(old, Str("def")))
	qt.Assert(t, qt.Equals(m.Len(), 0))
}

// A nil value is stored like any other and is distinguishable
// from an absent key.
func testNullValues(t *testing.T, m StringMap) {
	m.Put(Str("abc"), nil)
	v, ok := m.Get(Str("abc"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(v))
	qt.Assert(t, qt.IsTrue(m.Has(Str("abc"))))
	qt.Assert(t, qt.IsTrue(m.ContainsValue(nil)))
	qt.Assert(t, qt.Equals(m.Len(), 1))

	old, ok := m.Delete(Str("abc"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsNil(old))
	qt.Assert(t, qt.Equals(m.Len(), 0))
	qt.Assert(t, qt.IsFalse(m.Has(Str("abc"))))
	qt.Assert(t, qt.IsFalse(m.ContainsValue(nil)))
}

func testPastInitialCapacity(t *testing.T, m StringMap) {
	initial := m.Cap()
	fill(m, 127)
	qt.Assert(t, qt.Equals(m.Len(), 127))
	qt.Assert(t, qt.IsTrue(m.Cap() >= initial))

	for i := range 127 {
		qt.Assert(t, qt.DeepEquals(m.At(Str(fmt.Sprint(i))), Str(fmt.Sprintf("v: %d", i))))
	}

	m.Clear()
	qt.Assert(t, qt.Equals(m.Len(), 0))
	qt.Assert(t, qt.IsTrue(m.IsEmpty()))
	qt.Assert(t, qt.IsFalse(m.Has(Str("0"))))
}

func testDuplicateKeys(t *testing.T, m StringMap) {
	m.Put(Str("abc"), Str("abc"))
	prev, replaced := m.Put(Str("abc"), Str("def"))
	qt.Assert(t, qt.IsTrue(replaced))
	qt.Assert(t, qt.DeepEquals(prev, Str("abc")))
	qt.Assert(t, qt.DeepEquals(m.At(Str("abc")), Str("def")))
	qt.Assert(t, qt.Equals(m.Len(), 1))

	old, ok := m.Delete(Str("abc"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(old, Str("def")))
	qt.Assert(t, qt.Equals(m.Len(), 0))
}

func testMissingKey(t *testing.T, m StringMap) {
	v, ok := m.Get(Str("abc"))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsNil(v))
	qt.Assert(t, qt.IsFalse(m.Has(Str("abc"))))
	qt.Assert(t, qt.IsFalse(m.ContainsValue(Str("def"))))

	prev, replaced := m.Put(Str("abc"), Str("def"))
	qt.Assert(t, qt.IsFalse(replaced))
	qt.Assert(t, qt.IsNil(prev))

	qt.Assert(t, qt.DeepEquals(m.At(Str("abc")), Str("def")))
	qt.Assert(t, qt.IsTrue(m.Has(Str("abc"))))
	qt.Assert(t, qt.IsTrue(m.ContainsValue(Str("def"))))

	m.Clear()
	qt.Assert(t, qt.Equals(m.Len(), 0))
}

func testDeleteAbsent(t *testing.T, m StringMap) {
	m.Put(Str("a"), Str("1"))

	old, ok := m.Delete(Str("b"))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsNil(old))
	qt.Assert(t, qt.Equals(m.Len(), 1))

	m.Delete(Str("a"))
	old, ok = m.Delete(Str("a"))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsNil(old))
	qt.Assert(t, qt.Equals(m.Len(), 0))
}

func testKeySet(t *testing.T, m StringMap) {
	fill(m, 127)
	m.Put(nil, Str("null"))

	keys := m.KeySet()
	qt.Assert(t, qt.Equals(keys.Len(), 128))
	for i := range 127 {
		qt.Assert(t, qt.IsTrue(keys.Has(Str(fmt.Sprint(i)))))
	}
	qt.Assert(t, qt.IsTrue(keys.Has(nil)))
	qt.Assert(t, qt.IsFalse(keys.Has(Str("127"))))
	qt.Assert(t, qt.HasLen(keys.Slice(), 128))
}

func testEntrySet(t *testing.T, m StringMap) {
	fill(m, 127)

	entries := m.EntrySet()
	qt.Assert(t, qt.Equals(entries.Len(), 127))
	for i := range 127 {
		qt.Assert(t, qt.IsTrue(entries.Has(hashmap.NewEntry(Str(fmt.Sprint(i)), Str(fmt.Sprintf("v: %d", i))))))
	}
	// Entries compare by key alone.
	qt.Assert(t, qt.IsTrue(entries.Has(hashmap.NewEntry(Str("3"), Str("other")))))
	qt.Assert(t, qt.IsFalse(entries.Has(hashmap.NewEntry(Str("127"), Str("v: 127")))))

	for e := range entries.All() {
		qt.Assert(t, qt.Equals(*e.Value(), "v: "+*e.Key()))
	}
}

func testValues(t *testing.T, m StringMap) {
	fill(m, 127)
	m.Put(Str("dup"), Str("v: 7"))

	vals := m.Values()
	qt.Assert(t, qt.HasLen(vals, 128))
	count := 0
	for _, v := range vals {
		if *v == "v: 7" {
			count++
		}
	}
	qt.Assert(t, qt.Equals(count, 2))
	for i := range 127 {
		qt.Assert(t, qt.IsTrue(m.ContainsValue(Str(fmt.Sprintf("v: %d", i)))))
	}
}

func testViewsAreSnapshots(t *testing.T, m StringMap) {
	fill(m, 10)
	keys := m.KeySet()
	entries := m.EntrySet()
	vals := m.Values()

	m.Delete(Str("0"))
	m.Put(Str("new"), Str("v: new"))
	m.Put(Str("1"), Str("changed"))

	qt.Assert(t, qt.Equals(keys.Len(), 10))
	qt.Assert(t, qt.IsTrue(keys.Has(Str("0"))))
	qt.Assert(t, qt.IsFalse(keys.Has(Str("new"))))
	qt.Assert(t, qt.Equals(entries.Len(), 10))
	qt.Assert(t, qt.HasLen(vals, 10))
	for e := range entries.All() {
		qt.Assert(t, qt.Equals(*e.Value(), "v: "+*e.Key()))
	}
}

func testPutAll(t *testing.T, m StringMap) {
	m.Put(Str("0"), Str("old"))
	m.Put(Str("keep"), Str("kept"))

	src := hashmap.NewProbingMap[*string, *string](srcHasher, nil)
	fill(src, 50)
	src.Put(nil, Str("null"))

	m.PutAll(src)
	qt.Assert(t, qt.Equals(m.Len(), 52))
	for i := range 50 {
		qt.Assert(t, qt.DeepEquals(m.At(Str(fmt.Sprint(i))), Str(fmt.Sprintf("v: %d", i))))
	}
	qt.Assert(t, qt.DeepEquals(m.At(Str("keep")), Str("kept")))
	qt.Assert(t, qt.DeepEquals(m.At(nil), Str("null")))
	qt.Assert(t, qt.Equals(src.Len(), 51))
}

// testRandomOps checks the map against a built-in map over a
// random sequence of puts and deletes drawn from a small key space,
// so that keys are deleted and reinserted many times.
func testRandomOps(t *testing.T, m StringMap) {
	rnd := rand.New(rand.NewPCG(1, 2))
	ref := make(map[string]string)
	for i := range 20000 {
		k := fmt.Sprint(rnd.IntN(300))
		switch rnd.IntN(3) {
		case 0:
			old, ok := m.Delete(Str(k))
			want, wantOK := ref[k]
			if ok != wantOK || (ok && *old != want) {
				t.Fatalf("op %d: Delete(%q) = %v, %v; want %q, %v", i, k, old, ok, want, wantOK)
			}
			delete(ref, k)
		default:
			v := fmt.Sprintf("v%d", i)
			prev, replaced := m.Put(Str(k), Str(v))
			want, wantOK := ref[k]
			if replaced != wantOK || (replaced && *prev != want) {
				t.Fatalf("op %d: Put(%q) = %v, %v; want %q, %v", i, k, prev, replaced, want, wantOK)
			}
			ref[k] = v
		}
		if m.Len() != len(ref) {
			t.Fatalf("op %d: Len() = %d; want %d", i, m.Len(), len(ref))
		}
	}
	n := 0
	for k, v := range m.All() {
		n++
		qt.Assert(t, qt.Equals(*v, ref[*k]))
	}
	qt.Assert(t, qt.Equals(n, len(ref)))
	for k, v := range ref {
		qt.Assert(t, qt.DeepEquals(m.At(Str(k)), Str(v)))
	}
}

func testMillionEntries(t *testing.T, m StringMap) {
	if testing.Short() {
		t.Skip("skipping million-entry test in short mode")
	}
	const n = 1000000
	fill(m, n)
	qt.Assert(t, qt.Equals(m.Len(), n))

	for i := range n {
		want := fmt.Sprintf("v: %d", i)
		if v, ok := m.Get(Str(fmt.Sprint(i))); !ok || *v != want {
			t.Fatalf("Get(%q) = %v, %v; want %q", fmt.Sprint(i), v, ok, want)
		}
	}

	m.Clear()
	qt.Assert(t, qt.Equals(m.Len(), 0))
}
