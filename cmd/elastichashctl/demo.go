package main

import (
	"fmt"

	"elastichash"
	"elastichash/internal/config"
)

// runDemo walks through the scripted scenarios of spec.md §8 (Scenario A-C)
// against a live Table, printing each step's observable result.
func runDemo(cfg config.Config) error {
	t, err := elastichash.New[string, int](cfg.InitialCapacity, cfg.Delta)
	if err != nil {
		return err
	}

	for _, s := range cfg.Seed {
		if _, _, err := t.Put(s.Key, s.Value); err != nil {
			return err
		}
	}

	fmt.Println("elastichash demo: capacity", t.Capacity(), "delta", cfg.Delta)

	fmt.Println("\n-- Scenario A: basic put/get --")
	show(t.Put("apple", 1))
	fmt.Println("get(apple) ->", mustGet(t, "apple"), "size ->", t.Len())
	show(t.Put("apple", 10))
	fmt.Println("get(apple) ->", mustGet(t, "apple"), "size ->", t.Len())

	fmt.Println("\n-- Scenario B: remove --")
	show(t.Put("banana", 2))
	v, ok, err := t.Remove("banana")
	if err != nil {
		return err
	}
	fmt.Println("remove(banana) ->", v, ok)
	_, found, _ := t.Get("banana")
	fmt.Println("get(banana) present? ->", found, "size ->", t.Len())

	fmt.Println("\n-- Scenario C: forced resize --")
	for i := 0; i < 2000; i++ {
		key := fmt.Sprintf("key%d", i)
		if _, _, err := t.Put(key, i); err != nil {
			return err
		}
	}
	fmt.Println("size after 2000 inserts ->", t.Len())
	mismatches := 0
	for i := 0; i < 2000; i++ {
		key := fmt.Sprintf("key%d", i)
		got, ok, err := t.Get(key)
		if err != nil {
			return err
		}
		if !ok || got != i {
			mismatches++
		}
	}
	fmt.Println("retrieval mismatches ->", mismatches)
	fmt.Println("final batch ->", t.Batch(), "segments ->", len(t.Stats()))

	return nil
}

func show(prev int, had bool, err error) {
	if err != nil {
		fmt.Println("put error:", err)
		return
	}
	if had {
		fmt.Println("put -> previous value was", prev)
	} else {
		fmt.Println("put -> none (fresh insert)")
	}
}

func mustGet(t *elastichash.Table[string, int], key string) int {
	v, _, _ := t.Get(key)
	return v
}
