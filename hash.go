package elastichash

import (
	"fmt"
	"hash/maphash"
)

// HashFunc computes a 32-bit hash for a key. Tables default to
// defaultHash, which special-cases the common comparable kinds and falls
// back to hashing the key's default string form for everything else.
type HashFunc[K comparable] func(K) uint32

var tableSeed = maphash.MakeSeed()

// defaultHash builds a HashFunc for K without requiring the caller to
// supply one. It special-cases the kinds most keys use in practice (ints,
// strings, and fmt.Stringer) the way a hand-written hasher would, and falls
// back to hashing K's default %v form through maphash for everything else,
// so any comparable K works out of the box.
func defaultHash[K comparable]() HashFunc[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint32 {
			s := any(k).(string)
			return hashString(s)
		}
	case int:
		return func(k K) uint32 { return hashUint64(uint64(any(k).(int))) }
	case int32:
		return func(k K) uint32 { return hashUint64(uint64(any(k).(int32))) }
	case int64:
		return func(k K) uint32 { return hashUint64(uint64(any(k).(int64))) }
	case uint:
		return func(k K) uint32 { return hashUint64(uint64(any(k).(uint))) }
	case uint32:
		return func(k K) uint32 { return hashUint64(uint64(any(k).(uint32))) }
	case uint64:
		return func(k K) uint32 { return hashUint64(any(k).(uint64)) }
	}

	return func(k K) uint32 {
		if s, ok := any(k).(fmt.Stringer); ok {
			return hashString(s.String())
		}
		return hashString(fmt.Sprintf("%v", k))
	}
}

func hashString(s string) uint32 {
	var h maphash.Hash
	h.SetSeed(tableSeed)
	_, _ = h.WriteString(s)
	return hashUint64(h.Sum64())
}

// hashUint64 folds a 64-bit value into 32 bits via SplitMix64-style mixing,
// matching the diffusion quality the probe engine's own mix() expects.
func hashUint64(x uint64) uint32 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return uint32(x) ^ uint32(x>>32)
}
