package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"elastichash"
	"elastichash/internal/config"
)

// runREPL starts an interactive shell over a Table[string, string],
// letting an operator watch batch promotion and resize happen live.
func runREPL(cfg config.Config) error {
	t, err := elastichash.New[string, string](cfg.InitialCapacity, cfg.Delta)
	if err != nil {
		return err
	}
	for _, s := range cfg.Seed {
		if _, _, err := t.Put(s.Key, fmt.Sprint(s.Value)); err != nil {
			return err
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("elastichash repl - type 'help' for commands, 'exit' to quit")
	for {
		input, err := line.Prompt("elastichash> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		line.AppendHistory(input)

		if stop := dispatch(t, strings.TrimSpace(input)); stop {
			return nil
		}
	}
}

func dispatch(t *elastichash.Table[string, string], input string) (stop bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true
	case "help":
		printREPLHelp()
	case "put":
		if len(args) < 2 {
			fmt.Println("usage: put <key> <value>")
			return false
		}
		prev, had, err := t.Put(args[0], strings.Join(args[1:], " "))
		if err != nil {
			fmt.Println("error:", err)
			return false
		}
		if had {
			fmt.Println("previous:", prev)
		} else {
			fmt.Println("inserted")
		}
	case "get":
		if len(args) != 1 {
			fmt.Println("usage: get <key>")
			return false
		}
		v, ok, err := t.Get(args[0])
		if err != nil {
			fmt.Println("error:", err)
		} else if ok {
			fmt.Println(v)
		} else {
			fmt.Println("(not found)")
		}
	case "del":
		if len(args) != 1 {
			fmt.Println("usage: del <key>")
			return false
		}
		v, ok, err := t.Remove(args[0])
		if err != nil {
			fmt.Println("error:", err)
		} else if ok {
			fmt.Println("removed:", v)
		} else {
			fmt.Println("(not found)")
		}
	case "len":
		fmt.Println(t.Len())
	case "keys":
		for _, k := range t.Keys().Slice() {
			fmt.Println(k)
		}
	case "values":
		for _, v := range t.Values().Slice() {
			fmt.Println(v)
		}
	case "stats":
		for _, s := range t.Stats() {
			fmt.Printf("segment %d: cap=%d occ=%d free=%.3f\n", s.Index, s.Capacity, s.Occupied, s.FreeFraction)
		}
		fmt.Println("batch:", t.Batch())
	case "dump":
		fmt.Println(t.Dump())
	case "clear":
		t.Clear()
		fmt.Println("cleared")
	default:
		fmt.Printf("unknown command %q (try 'help')\n", cmd)
	}
	return false
}

func printREPLHelp() {
	fmt.Println(`commands:
  put <key> <value>   insert or update
  get <key>            retrieve
  del <key>            remove
  len                  current size
  keys                 list all keys
  values               list all values
  stats                per-segment occupancy and batch
  dump                 pretty-print internal layout
  clear                empty the table
  exit / quit / q      leave the repl`)
}
