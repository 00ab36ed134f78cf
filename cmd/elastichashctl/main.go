// Command elastichashctl demonstrates and exercises the elastichash
// container: a scripted demo, an interactive REPL, and a throughput
// benchmark. Each subcommand builds its own table: demo uses a
// Table[string, int], repl a Table[string, string], bench a Table[int, int].
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"elastichash/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	cmd, rest := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	configPath := fs.StringP("config", "f", "elastichash.jsonc", "path to a JWCC config file")
	capacity := fs.IntP("capacity", "c", 0, "initial capacity (overrides config)")
	delta := fs.Float64P("delta", "d", 0, "load-gap delta in (0,1) (overrides config)")
	count := fs.IntP("count", "n", 10000, "number of keys for bench")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	fileCfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg := config.Merge(config.Default(), fileCfg)
	cfg = config.Merge(cfg, config.Config{InitialCapacity: *capacity, Delta: *delta})

	switch cmd {
	case "demo":
		return runDemo(cfg)
	case "repl":
		return runREPL(cfg)
	case "bench":
		return runBench(cfg, *count)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `elastichashctl <command> [flags]

Commands:
  demo    run a scripted put/get/remove/resize walkthrough
  repl    interactive shell over a Table[string, string]
  bench   throughput benchmark with occupancy histogram

Flags:
  -f, --config string    path to a JWCC config file (default "elastichash.jsonc")
  -c, --capacity int     initial capacity (overrides config)
  -d, --delta float      load-gap delta in (0,1) (overrides config)
  -n, --count int        number of keys for bench (default 10000)`)
}
