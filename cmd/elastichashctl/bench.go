package main

import (
	"fmt"
	"math/rand"
	"time"

	"elastichash"
	"elastichash/internal/config"
)

// runBench inserts count random keys and reports throughput plus the final
// per-segment occupancy histogram, so an operator can see how delta
// shapes segment fill.
func runBench(cfg config.Config, count int) error {
	t, err := elastichash.New[int, int](cfg.InitialCapacity, cfg.Delta)
	if err != nil {
		return err
	}

	keys := rand.Perm(count)

	start := time.Now()
	for _, k := range keys {
		if _, _, err := t.Put(k, k); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("inserted %d keys in %s (%.0f ops/sec)\n", count, elapsed, float64(count)/elapsed.Seconds())
	fmt.Println("final size:", t.Len(), "capacity:", t.Capacity(), "batch:", t.Batch())
	for _, s := range t.Stats() {
		fmt.Printf("  segment %d: cap=%6d occ=%6d free=%.3f\n", s.Index, s.Capacity, s.Occupied, s.FreeFraction)
	}
	return nil
}
