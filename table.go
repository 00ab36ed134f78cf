// Package elastichash implements the elastic-hashing open-addressing
// scheme of Farach-Colton, Krapivin, and Kuszmaul ("Optimal Bounds for Open
// Addressing Without Reordering"): a segmented hash table that never
// relocates a placed entry, offering O(1) amortized lookup and
// O(log(1/delta)) worst-case insertion probes under a configured load-gap
// parameter delta.
package elastichash

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Table is an elastic-hashing associative container mapping keys of type K
// to values of type V. The zero value is not usable; construct one with
// New. A Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	segments []*segment[K, V]

	batch     int
	rehashing bool

	size          int
	delta         float64
	totalCapacity int
	threshold     int

	hashFn HashFunc[K]
}

// Option configures optional Table behavior at construction time.
type Option[K comparable, V any] func(*tableOptions[K, V])

type tableOptions[K comparable, V any] struct {
	hashFn HashFunc[K]
}

// WithHashFunc overrides the table's default key hash function. Most
// callers never need this: New picks a sensible default based on K's kind.
func WithHashFunc[K comparable, V any](h HashFunc[K]) Option[K, V] {
	return func(o *tableOptions[K, V]) {
		o.hashFn = h
	}
}

// New constructs a Table with the given initial capacity hint and load-gap
// parameter delta. capacity must be positive and delta must lie in (0,1);
// otherwise New returns ErrInvalidCapacity or ErrInvalidDelta.
func New[K comparable, V any](capacity int, delta float64, opts ...Option[K, V]) (*Table[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if delta <= 0 || delta >= 1 {
		return nil, ErrInvalidDelta
	}

	o := tableOptions[K, V]{hashFn: defaultHash[K]()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[K, V]{
		delta:  delta,
		hashFn: o.hashFn,
	}
	t.allocate(capacity)

	return t, nil
}

// allocate (re)builds the segment array for the given capacity hint,
// resetting batch, size, and threshold. It does not touch existing data;
// callers that need to preserve entries must rehash them afterward.
func (t *Table[K, V]) allocate(capacity int) {
	caps := segmentCapacities(capacity)
	segments := make([]*segment[K, V], len(caps))
	for i, c := range caps {
		segments[i] = newSegment[K, V](c)
	}

	t.segments = segments
	t.batch = 0
	t.size = 0
	t.totalCapacity = totalCapacityOf(caps)
	t.threshold = t.totalCapacity - int(math.Floor(t.delta*float64(t.totalCapacity)))
}

// numSegments returns s, the number of segments currently in the table.
func (t *Table[K, V]) numSegments() int {
	return len(t.segments)
}

// Len returns N, the number of live entries.
func (t *Table[K, V]) Len() int {
	return t.size
}

// IsEmpty reports whether the table holds no entries.
func (t *Table[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Capacity returns the table's effective total capacity across all
// segments (which may exceed the capacity hint passed to New or Resize).
func (t *Table[K, V]) Capacity() int {
	return t.totalCapacity
}

// lookupLocate finds the entry for key, if present, and reports its
// physical location. It replicates the exact probe sequence each segment
// could have been populated under — see DESIGN.md's resolution of the
// Case-1 next-segment quirk for why a segment may need two probe sequences.
func (t *Table[K, V]) lookupLocate(key K, h uint32) (seg *segment[K, V], slot int, found bool) {
	b := t.batch
	limit := t.numSegments()
	if limit > b+2 {
		limit = b + 2
	}

	for i := 0; i < limit; i++ {
		s := t.segments[i]

		if i <= b {
			if _, slotIdx, ok := scanChain(s, i, key, h); ok {
				return s, slotIdx, true
			}
		}
		if i >= 1 && i <= b+1 {
			if _, slotIdx, ok := scanChain(s, i-1, key, h); ok {
				return s, slotIdx, true
			}
		}
	}
	return nil, 0, false
}

// scanChain walks segment s's probe chain under probe-index idx looking
// for key, stopping at the first empty slot (which proves key is absent
// from this particular chain).
func scanChain[K comparable, V any](s *segment[K, V], idx int, key K, h uint32) (entry[K, V], int, bool) {
	capacity := s.capacity()
	for j := 1; j <= capacity; j++ {
		pos := probeSlot(idx, j, h, capacity)
		e, occ := s.slotAt(pos)
		if !occ {
			return entry[K, V]{}, 0, false
		}
		if e.hash == h && e.key == key {
			return e, pos, true
		}
	}
	return entry[K, V]{}, 0, false
}

// Get returns the value associated with key, if present.
func (t *Table[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, ErrNilKey
	}
	h := t.hashFn(key)
	seg, slot, found := t.lookupLocate(key, h)
	if !found {
		return zero, false, nil
	}
	e, _ := seg.slotAt(slot)
	return e.value, true, nil
}

// ContainsKey reports whether key is present.
func (t *Table[K, V]) ContainsKey(key K) (bool, error) {
	_, ok, err := t.Get(key)
	return ok, err
}

// ContainsValue reports whether any entry's value equals v (linear scan,
// compared via reflect.DeepEqual since V is not required to be comparable).
func (t *Table[K, V]) ContainsValue(v V) bool {
	found := false
	t.Range(func(_ K, value V) bool {
		if reflect.DeepEqual(value, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Put inserts or updates the value for key, returning the previous value
// and whether one existed. An error is returned only for a nil key or for
// an internal invariant violation (see ErrInsertionFailed,
// ErrRehashSizeMismatch); the table must be discarded after the latter.
func (t *Table[K, V]) Put(key K, value V) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, ErrNilKey
	}

	h := t.hashFn(key)
	if seg, slot, found := t.lookupLocate(key, h); found {
		e, _ := seg.slotAt(slot)
		prev := e.value
		e.value = value
		seg.slots[slot] = e
		return prev, true, nil
	}

	if t.size >= t.threshold {
		if err := t.Resize(2 * t.totalCapacity); err != nil {
			return zero, false, err
		}
	}

	e := entry[K, V]{key: key, value: value, hash: h}
	if err := t.insert(&e); err != nil {
		return zero, false, err
	}
	return zero, false, nil
}

// Remove deletes key if present, returning its value and true. The slot is
// cleared without a tombstone, per the no-reordering design (see
// DESIGN.md / spec §4.4): a later lookup whose probe chain passes through
// this now-empty slot for a *different* key may report that key absent
// even though it is present further along its chain. This is a known,
// accepted limitation of reorderless open addressing.
func (t *Table[K, V]) Remove(key K) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, ErrNilKey
	}
	h := t.hashFn(key)
	seg, slot, found := t.lookupLocate(key, h)
	if !found {
		return zero, false, nil
	}
	e, _ := seg.slotAt(slot)
	seg.vacate(slot)
	t.size--
	return e.value, true, nil
}

// Clear empties the table, zeroing every segment's slots and occupancy
// while preserving total capacity and segment layout.
func (t *Table[K, V]) Clear() {
	for _, s := range t.segments {
		s.reset()
	}
	t.size = 0
	t.batch = 0
	t.rehashing = false
}

// PutAll inserts every pair from m, growing capacity in advance if needed
// (spec §4.4 bulk_insert): new_capacity = max(2*C_total, ceil(4*(N+|m|)/3)).
func (t *Table[K, V]) PutAll(m map[K]V) error {
	projected := t.size + len(m)
	if projected > t.threshold {
		grown := 2 * t.totalCapacity
		need := int(math.Ceil(4 * float64(projected) / 3))
		if need > grown {
			grown = need
		}
		if err := t.Resize(grown); err != nil {
			return err
		}
	}
	for k, v := range m {
		if _, _, err := t.Put(k, v); err != nil {
			return fmt.Errorf("putall key %v: %w", k, err)
		}
	}
	return nil
}

// Resize grows the table to newCapacity (rounded per the segment layout
// rules) and rehashes every live entry into the new segments. Size is
// preserved exactly; a mismatch after rehashing is a fatal invariant
// violation (ErrRehashSizeMismatch).
func (t *Table[K, V]) Resize(newCapacity int) error {
	oldSegments := t.segments
	oldSize := t.size

	t.allocate(newCapacity)
	t.rehashing = true

	var rehashed int
	for _, seg := range oldSegments {
		for i := 0; i < seg.capacity(); i++ {
			e, occ := seg.slotAt(i)
			if !occ {
				continue
			}
			ne := entry[K, V]{key: e.key, value: e.value, hash: e.hash}
			if err := t.insert(&ne); err != nil {
				t.rehashing = false
				return err
			}
			rehashed++
		}
	}
	t.rehashing = false

	if rehashed != oldSize {
		return ErrRehashSizeMismatch
	}
	return nil
}

// Range calls f for every live entry in segment-index-ascending,
// slot-index-ascending order, stopping early if f returns false. Values
// are copies (snapshot semantics): mutating the table during Range is
// undefined, but the pairs already yielded are unaffected by it.
func (t *Table[K, V]) Range(f func(K, V) bool) {
	for _, s := range t.segments {
		for i := 0; i < s.capacity(); i++ {
			e, occ := s.slotAt(i)
			if !occ {
				continue
			}
			if !f(e.key, e.value) {
				return
			}
		}
	}
}

// All returns a range-over-func iterator, for `for k, v := range t.All()`.
func (t *Table[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		t.Range(yield)
	}
}

// Equal reports whether t and other have the same size and, for every key
// in t, other maps it to an equal value (compared via reflect.DeepEqual).
func (t *Table[K, V]) Equal(other *Table[K, V]) bool {
	if other == nil {
		return false
	}
	if t.size != other.size {
		return false
	}
	equal := true
	t.Range(func(k K, v V) bool {
		ov, ok, _ := other.Get(k)
		if !ok || !reflect.DeepEqual(v, ov) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// HashCode returns the sum of per-entry hash codes (key-hash XOR
// value-hash), consistent with the standard mapping contract. Values that
// don't implement Hashable contribute zero to their entry's hash; see
// DESIGN.md for why Go has no universal analog of Java's Object.hashCode.
func (t *Table[K, V]) HashCode() uint32 {
	var sum uint32
	t.Range(func(k K, v V) bool {
		sum += t.hashFn(k) ^ valueHash(v)
		return true
	})
	return sum
}

// String renders the table as "{k1=v1, k2=v2, ...}" in iteration order, or
// "{}" when empty.
func (t *Table[K, V]) String() string {
	if t.size == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	t.Range(func(k K, v V) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=%v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}
