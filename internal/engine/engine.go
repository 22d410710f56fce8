// Package engine implements the search side of the program: static
// evaluation, the transposition table, move ordering heuristics and an
// iterative-deepening alpha-beta driver behind a small Engine facade.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/quietpawn/quietpawn/internal/board"
)

// SearchLimits bounds a search. Depth caps the iterative deepening;
// MoveTime is the wall-clock budget.
type SearchLimits struct {
	Depth    int
	MoveTime time.Duration
}

// SearchResult is what a search returns. BestMove is board.NoMove when
// the position has no legal moves; check IsCheckmate / IsStalemate.
type SearchResult struct {
	BestMove board.Move
	Score    int
	Depth    int
	Nodes    uint64
	QNodes   uint64
	Elapsed  time.Duration
}

// Difficulty selects a search limit preset.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps difficulty presets to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 5, MoveTime: 2 * time.Second},
	Hard:   {Depth: 7, MoveTime: 5 * time.Second},
}

// DefaultTTSizeMB is the default transposition table size.
const DefaultTTSizeMB = 64

// Engine owns one search context and its transposition table. It is
// synchronous and single-threaded: Search runs on the caller's
// goroutine. An Engine must not run two searches at once; callers
// needing responsiveness run Search on their own goroutine and may
// flip the stop latch with Stop.
type Engine struct {
	sc         *searchContext
	tt         *TranspositionTable
	stopFlag   atomic.Bool
	difficulty Difficulty
}

// NewEngine creates an engine with a transposition table of the given
// size in MiB.
func NewEngine(ttSizeMB int) *Engine {
	e := &Engine{difficulty: Medium}
	e.tt = NewTranspositionTable(ttSizeMB)
	e.sc = newSearchContext(e.tt, &e.stopFlag)
	return e
}

// SetDifficulty selects the preset used by Search.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current preset.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds the best move under the current difficulty preset.
func (e *Engine) Search(pos *board.Position) SearchResult {
	return e.SearchWithLimits(pos, DifficultySettings[e.difficulty])
}

// SearchWithLimits finds the best move under explicit limits. The
// caller's position is cloned; the search mutates only its own copy.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) SearchResult {
	e.stopFlag.Store(false)

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	budget := limits.MoveTime
	if budget <= 0 {
		budget = time.Hour
	}

	work := pos.Copy()
	move, stats := e.sc.searchRoot(work, maxDepth, budget)

	return SearchResult{
		BestMove: move,
		Score:    stats.Score,
		Depth:    stats.Depth,
		Nodes:    stats.Nodes,
		QNodes:   stats.QNodes,
		Elapsed:  stats.Elapsed,
	}
}

// Stop asks a running search to stop. The search still returns the
// best move from its last fully completed depth.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// Clear drops all learned state: the transposition table, killers and
// history.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.sc.killers = [MaxPly][2]board.Move{}
	e.sc.history = [2][64][64]int{}
}

// Evaluate exposes the static evaluation for the position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// Perft counts legal move sequences of the given length, for move
// generation verification.
func Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		u, ok := pos.MakeMove(moves.Get(i))
		if !ok {
			continue
		}
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(u)
	}
	return nodes
}

// ScoreString renders a score as pawns ("+1.32") or a mate distance
// ("mate 3").
func ScoreString(score int) string {
	if score > MateScore-MaxPly {
		return "mate " + itoa((MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return "mate -" + itoa((MateScore+score+1)/2)
	}
	sign := "+"
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + itoa(score/100) + "." + pad2(score%100)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}

func pad2(n int) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}
