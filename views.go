package elastichash

// KeySet is a lazy, read-through view over a Table's keys. It never
// materializes a snapshot eagerly; Range walks the backing table directly.
type KeySet[K comparable, V any] struct {
	t *Table[K, V]
}

// Keys returns a view of t's keys.
func (t *Table[K, V]) Keys() KeySet[K, V] {
	return KeySet[K, V]{t: t}
}

// Len returns the number of keys, equal to the table's size.
func (k KeySet[K, V]) Len() int {
	return k.t.Len()
}

// Contains reports whether key is present in the backing table.
func (k KeySet[K, V]) Contains(key K) bool {
	ok, _ := k.t.ContainsKey(key)
	return ok
}

// Range calls f for every key in segment-then-slot order.
func (k KeySet[K, V]) Range(f func(K) bool) {
	k.t.Range(func(key K, _ V) bool {
		return f(key)
	})
}

// Slice materializes the keys into a new slice, in iteration order.
func (k KeySet[K, V]) Slice() []K {
	out := make([]K, 0, k.t.Len())
	k.Range(func(key K) bool {
		out = append(out, key)
		return true
	})
	return out
}

// ValueCollection is a lazy, read-through view over a Table's values.
type ValueCollection[K comparable, V any] struct {
	t *Table[K, V]
}

// Values returns a view of t's values.
func (t *Table[K, V]) Values() ValueCollection[K, V] {
	return ValueCollection[K, V]{t: t}
}

// Len returns the number of values, equal to the table's size.
func (vc ValueCollection[K, V]) Len() int {
	return vc.t.Len()
}

// Contains reports whether any entry's value equals v (linear scan).
func (vc ValueCollection[K, V]) Contains(v V) bool {
	return vc.t.ContainsValue(v)
}

// Range calls f for every value in segment-then-slot order.
func (vc ValueCollection[K, V]) Range(f func(V) bool) {
	vc.t.Range(func(_ K, value V) bool {
		return f(value)
	})
}

// Slice materializes the values into a new slice, in iteration order.
func (vc ValueCollection[K, V]) Slice() []V {
	out := make([]V, 0, vc.t.Len())
	vc.Range(func(value V) bool {
		out = append(out, value)
		return true
	})
	return out
}

// MapEntry is a single observed (key, value) pair from an EntrySet. SetValue
// writes the value back through to the backing table — the one piece of
// view-collection behavior that is not purely read-only, matching the
// standard mapping contract's Map.Entry.setValue.
type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
	t     *Table[K, V]
}

// SetValue writes a new value for this entry's key back into the backing
// table and returns the value that was previously stored there.
func (e MapEntry[K, V]) SetValue(v V) (V, error) {
	prev, _, err := e.t.Put(e.Key, v)
	return prev, err
}

// EntrySet is a lazy, read-through view over a Table's (key, value) pairs.
type EntrySet[K comparable, V any] struct {
	t *Table[K, V]
}

// Entries returns a view of t's entries.
func (t *Table[K, V]) Entries() EntrySet[K, V] {
	return EntrySet[K, V]{t: t}
}

// Len returns the number of entries, equal to the table's size.
func (es EntrySet[K, V]) Len() int {
	return es.t.Len()
}

// Range calls f for every entry in segment-then-slot order.
func (es EntrySet[K, V]) Range(f func(MapEntry[K, V]) bool) {
	es.t.Range(func(k K, v V) bool {
		return f(MapEntry[K, V]{Key: k, Value: v, t: es.t})
	})
}

// Slice materializes the entries into a new slice, in iteration order.
func (es EntrySet[K, V]) Slice() []MapEntry[K, V] {
	out := make([]MapEntry[K, V], 0, es.t.Len())
	es.Range(func(e MapEntry[K, V]) bool {
		out = append(out, e)
		return true
	})
	return out
}
