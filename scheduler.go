package elastichash

import "math"

// insert places e into the table, assuming the caller has already verified
// the key is absent and N < T. It is the insertion scheduler of spec §4.3:
// a batch-driven state machine choosing which segment receives e and which
// probing strategy to use, never relocating an entry once placed.
func (t *Table[K, V]) insert(e *entry[K, V]) error {
	s := t.numSegments()

	if !t.rehashing && t.batch == 0 {
		cur := t.segments[0]
		if cur.n >= ceilFrac(cur.capacity(), 3, 4) && s > 1 {
			t.batch = 1
		}
	}

	if t.batch == 0 {
		return t.insertB0(e)
	}
	return t.insertBPos(e)
}

// insertB0 implements Case B0: probe A0 with a bounded then unbounded
// phase; probe(0, j, h) collapses to a constant regardless of j (spec
// §4.2, §9), so this is a direct-mapped placement: if the one slot mix(h)
// selects is taken, A0 offers e no other slot and the table is resized,
// however far A0 is from the 75% promotion threshold.
func (t *Table[K, V]) insertB0(e *entry[K, V]) error {
	seg := t.segments[0]
	capacity := seg.capacity()
	epsilon1 := seg.freeFraction()
	bound := probeLimit(epsilon1, t.delta)
	if bound > capacity {
		bound = capacity
	}

	place := func(j int) bool {
		pos := probeSlot(0, j, e.hash, capacity)
		if seg.isEmpty(pos) {
			e.segmentIndex = 0
			e.probeCount = j
			seg.place(pos, *e)
			t.size++
			return true
		}
		return false
	}

	for j := 1; j <= bound; j++ {
		if place(j) {
			return t.afterB0Insert(seg)
		}
	}
	for j := bound + 1; j <= capacity; j++ {
		if place(j) {
			return t.afterB0Insert(seg)
		}
	}

	// A0 exhausted without a free slot: grow and retry this same entry.
	if err := t.Resize(2 * t.totalCapacity); err != nil {
		return err
	}
	return t.insert(e)
}

func (t *Table[K, V]) afterB0Insert(seg0 *segment[K, V]) error {
	if seg0.n >= ceilFrac(seg0.capacity(), 3, 4) && t.numSegments() > 1 {
		t.batch = 1
	}
	return nil
}

// insertBPos implements the three-case policy for batch >= 1.
func (t *Table[K, V]) insertBPos(e *entry[K, V]) error {
	b := t.batch
	cur := t.segments[b]
	hasNext := b+1 < t.numSegments()

	epsilon1 := cur.freeFraction()
	epsilon2 := 1.0
	var next *segment[K, V]
	if hasNext {
		next = t.segments[b+1]
		epsilon2 = next.freeFraction()
	}

	var err error
	switch {
	case hasNext && epsilon1 > t.delta/2 && epsilon2 > 0.25:
		err = t.insertCase1(e, cur, next)
	case hasNext && epsilon1 <= t.delta/2:
		err = t.insertLinear(e, next, b)
	default:
		// epsilon2 <= 0.25 (next too full) or no next segment.
		err = t.insertLinear(e, cur, b)
	}
	if err != nil {
		return err
	}

	t.afterBPosInsert(b, cur)
	return nil
}

// insertCase1 bounds-probes the current segment, then falls back to a
// single unbounded linear sweep of the next segment computed with
// segment-index b (not b+1) — the identifying quirk of the paper's
// injection-into-next-segment step; see spec §4.3, §9.
func (t *Table[K, V]) insertCase1(e *entry[K, V], cur, next *segment[K, V]) error {
	capacity := cur.capacity()
	bound := probeLimit(cur.freeFraction(), t.delta)
	if bound > capacity {
		bound = capacity
	}
	idx := t.batch
	for j := 1; j <= bound; j++ {
		pos := probeSlot(idx, j, e.hash, capacity)
		if cur.isEmpty(pos) {
			e.segmentIndex = idx
			e.probeCount = j
			cur.place(pos, *e)
			t.size++
			return nil
		}
	}

	// Single full linear sweep of the next segment, using the current
	// segment's index (idx == b), not the next segment's own index.
	nc := next.capacity()
	for j := 1; j <= nc; j++ {
		pos := probeSlot(idx, j, e.hash, nc)
		if next.isEmpty(pos) {
			e.segmentIndex = idx
			e.probeCount = j
			next.place(pos, *e)
			t.size++
			return nil
		}
	}

	return ErrInsertionFailed
}

// insertLinear performs a full unbounded linear sweep of target, computing
// probe indices with segment-index idx (which may differ from target's own
// position in the segment slice — see Case 2/3 and the Case-1 quirk).
func (t *Table[K, V]) insertLinear(e *entry[K, V], target *segment[K, V], idx int) error {
	capacity := target.capacity()
	for j := 1; j <= capacity; j++ {
		pos := probeSlot(idx, j, e.hash, capacity)
		if target.isEmpty(pos) {
			e.segmentIndex = idx
			e.probeCount = j
			target.place(pos, *e)
			t.size++
			return nil
		}
	}
	return ErrInsertionFailed
}

// afterBPosInsert applies the post-insert promotion rule: once A_b's
// occupancy reaches cap(A_b) - floor(delta*cap(A_b)/2), advance the batch.
func (t *Table[K, V]) afterBPosInsert(b int, cur *segment[K, V]) {
	promoteAt := cur.capacity() - int(math.Floor(t.delta*float64(cur.capacity())/2))
	if cur.n >= promoteAt && b+1 < t.numSegments() {
		t.batch = b + 1
	}
}

// ceilFrac returns ceil(capacity * num/den) for small positive integer
// fractions, avoiding floating-point rounding surprises at threshold
// boundaries.
func ceilFrac(capacity, num, den int) int {
	return (capacity*num + den - 1) / den
}
