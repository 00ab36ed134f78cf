package elastichash

import "github.com/sanity-io/litter"

// segmentStats summarizes one segment's occupancy for diagnostics.
type segmentStats struct {
	Index        int
	Capacity     int
	Occupied     int
	FreeFraction float64
}

// Stats returns a per-segment occupancy snapshot (the current batch is
// reported separately by Batch), useful for tuning delta or watching
// promotion happen in the REPL/bench tooling.
func (t *Table[K, V]) Stats() []segmentStats {
	out := make([]segmentStats, len(t.segments))
	for i, s := range t.segments {
		out[i] = segmentStats{
			Index:        i,
			Capacity:     s.capacity(),
			Occupied:     s.n,
			FreeFraction: s.freeFraction(),
		}
	}
	return out
}

// Batch returns the index of the segment currently receiving insertions.
func (t *Table[K, V]) Batch() int {
	return t.batch
}

// Dump pretty-prints the table's internal layout (segment stats, batch,
// threshold) for interactive debugging. It never includes stored entries
// themselves, since V may not be meaningfully printable.
func (t *Table[K, V]) Dump() string {
	return litter.Sdump(struct {
		Batch     int
		Size      int
		Threshold int
		Capacity  int
		Delta     float64
		Segments  []segmentStats
	}{
		Batch:     t.batch,
		Size:      t.size,
		Threshold: t.threshold,
		Capacity:  t.totalCapacity,
		Delta:     t.delta,
		Segments:  t.Stats(),
	})
}
