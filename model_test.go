package elastichash

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// modelOp is one step of a randomized operation sequence run against both
// the real Table and a plain Go map oracle.
type modelOp struct {
	kind string // "put", "get", "remove"
	key  string
	val  int
}

func genOps(r *rand.Rand, n, keyspace int) []modelOp {
	ops := make([]modelOp, n)
	for i := range ops {
		key := fmt.Sprintf("k%d", r.Intn(keyspace))
		switch r.Intn(3) {
		case 0:
			ops[i] = modelOp{kind: "put", key: key, val: r.Intn(1000)}
		case 1:
			ops[i] = modelOp{kind: "get", key: key}
		default:
			ops[i] = modelOp{kind: "remove", key: key}
		}
	}
	return ops
}

// snapshot captures a map's contents as a sorted slice for stable diffing.
func snapshot(m map[string]int) []struct {
	Key string
	Val int
} {
	out := make([]struct {
		Key string
		Val int
	}, 0, len(m))
	for k, v := range m {
		out = append(out, struct {
			Key string
			Val int
		}{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func tableSnapshot[V any](t *Table[string, V]) []struct {
	Key string
	Val V
} {
	out := make([]struct {
		Key string
		Val V
	}, 0, t.Len())
	t.Range(func(k string, v V) bool {
		out = append(out, struct {
			Key string
			Val V
		}{k, v})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TestModelAgainstMapOracle drives a randomized operation sequence through
// both the Table and a reference map, asserting their observable behavior
// and final contents agree at every step.
func TestModelAgainstMapOracle(t *testing.T) {
	seeds := []int64{1, 2, 3, 42, 1337}
	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))

			tb, err := New[string, int](64, 0.125)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			oracle := make(map[string]int)

			for step, op := range genOps(r, 500, 40) {
				switch op.kind {
				case "put":
					gotPrev, gotHad, err := tb.Put(op.key, op.val)
					if err != nil {
						t.Fatalf("step %d: Put(%q,%d): %v", step, op.key, op.val, err)
					}
					wantPrev, wantHad := oracle[op.key], false
					if _, ok := oracle[op.key]; ok {
						wantHad = true
					}
					if gotHad != wantHad || (wantHad && gotPrev != wantPrev) {
						t.Fatalf("step %d: Put(%q,%d) = (%d,%v), want (%d,%v)",
							step, op.key, op.val, gotPrev, gotHad, wantPrev, wantHad)
					}
					oracle[op.key] = op.val

				case "get":
					gotVal, gotOk, err := tb.Get(op.key)
					if err != nil {
						t.Fatalf("step %d: Get(%q): %v", step, op.key, err)
					}
					wantVal, wantOk := oracle[op.key]
					if gotOk != wantOk || (wantOk && gotVal != wantVal) {
						t.Fatalf("step %d: Get(%q) = (%d,%v), want (%d,%v)",
							step, op.key, gotVal, gotOk, wantVal, wantOk)
					}

				case "remove":
					gotVal, gotOk, err := tb.Remove(op.key)
					if err != nil {
						t.Fatalf("step %d: Remove(%q): %v", step, op.key, err)
					}
					wantVal, wantOk := oracle[op.key]
					if gotOk != wantOk || (wantOk && gotVal != wantVal) {
						t.Fatalf("step %d: Remove(%q) = (%d,%v), want (%d,%v)",
							step, op.key, gotVal, gotOk, wantVal, wantOk)
					}
					delete(oracle, op.key)
				}

				if tb.Len() != len(oracle) {
					t.Fatalf("step %d: Len() = %d, want %d", step, tb.Len(), len(oracle))
				}
			}

			if diff := cmp.Diff(snapshot(oracle), tableSnapshot(tb)); diff != "" {
				t.Fatalf("final table contents mismatch (-oracle +table):\n%s", diff)
			}
		})
	}
}

// TestModelSurvivesResize forces several resizes mid-sequence and checks the
// table still agrees with the oracle afterward.
func TestModelSurvivesResize(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	tb, err := New[string, int](8, 0.25)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	oracle := make(map[string]int)

	for i := 0; i < 300; i++ {
		key := fmt.Sprintf("r%d", r.Intn(20))
		val := r.Intn(100)
		if _, _, err := tb.Put(key, val); err != nil {
			t.Fatalf("Put: %v", err)
		}
		oracle[key] = val
	}

	if diff := cmp.Diff(snapshot(oracle), tableSnapshot(tb)); diff != "" {
		t.Fatalf("after growth, contents mismatch (-oracle +table):\n%s", diff)
	}
}
