// Command kestrel is the UCI engine binary: by default it runs the
// protocol loop over stdin/stdout; -perft and -bench run one-shot
// diagnostics instead and exit. Grounded on the teacher's zurichess/main.go
// (flag-driven one-shot modes before falling into the UCI loop).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/kestrelchess/kestrel/engine"
	"github.com/kestrelchess/kestrel/uci"
)

var (
	perftDepth = flag.Int("perft", 0, "run perft to the given depth from startpos and exit")
	benchDepth = flag.Int("bench", 0, "run the fixed benchmark suite to the given depth and exit")
	configPath = flag.String("config", "kestrel.yaml", "optional config file overriding engine defaults")
	verbose    = flag.Bool("verbose", false, "print a colorized startup banner to stderr")
)

func main() {
	flag.Parse()

	cfg, err := uci.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading %s: %v", *configPath, err)
	}
	cfg.Apply()

	if *verbose {
		printBanner()
	}

	switch {
	case *perftDepth > 0:
		runPerft(*perftDepth)
	case *benchDepth > 0:
		runBench(*benchDepth)
	default:
		runUCI()
	}
}

func printBanner() {
	bold := color.New(color.Bold, color.FgCyan)
	bold.Fprintln(os.Stderr, "kestrel — UCI chess engine")
	color.New(color.FgHiBlack).Fprintf(os.Stderr, "hash=%dMB\n", engine.DefaultHashSizeMB)
}

func runPerft(depth int) {
	pos, err := engine.PositionFromFEN(engine.FENStartPos)
	if err != nil {
		log.Fatal(err)
	}
	nodes := engine.Perft(pos, depth)
	fmt.Printf("perft(%d) = %d\n", depth, nodes)
}

func runBench(depth int) {
	stats, err := engine.Bench(depth)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("positions %d nodes %d time %s nps %d\n", stats.Positions, stats.Nodes, stats.Elapsed, stats.Nps())
}

func runUCI() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("info string ")

	loop := uci.NewLoop(os.Stdout)
	if err := loop.Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}
