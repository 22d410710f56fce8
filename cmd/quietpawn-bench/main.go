// quietpawn-bench runs a perft count or a single search from the
// command line, for move generation verification and profiling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/quietpawn/quietpawn/internal/board"
	"github.com/quietpawn/quietpawn/internal/engine"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to analyse")
	depth      = flag.Int("depth", 6, "maximum search depth")
	moveTime   = flag.Int("movetime", 5000, "search budget in milliseconds")
	perftDepth = flag.Int("perft", 0, "run perft to this depth instead of searching")
	hashMB     = flag.Int("hash", engine.DefaultTTSizeMB, "transposition table size in MiB")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}

	if *perftDepth > 0 {
		runPerft(pos, *perftDepth)
		return
	}

	eng := engine.NewEngine(*hashMB)
	res := eng.SearchWithLimits(pos, engine.SearchLimits{
		Depth:    *depth,
		MoveTime: time.Duration(*moveTime) * time.Millisecond,
	})

	if res.BestMove == board.NoMove {
		fmt.Println("no legal moves:", pos.GameStatus())
		return
	}
	fmt.Printf("bestmove %s score %s depth %d nodes %d qnodes %d time %dms\n",
		res.BestMove, engine.ScoreString(res.Score), res.Depth,
		res.Nodes, res.QNodes, res.Elapsed.Milliseconds())
}

func runPerft(pos *board.Position, maxDepth int) {
	for d := 1; d <= maxDepth; d++ {
		start := time.Now()
		nodes := engine.Perft(pos, d)
		fmt.Printf("perft(%d) = %d  (%.2fs)\n", d, nodes, time.Since(start).Seconds())
	}
}
