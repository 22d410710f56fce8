package engine

import (
	"sync/atomic"
	"time"

	"github.com/quietpawn/quietpawn/internal/board"
)

// Search constants. Mate scores shrink by ply so shorter mates win.
const (
	Infinity  = 100000000
	MateScore = 1000000
	MaxPly    = 128
)

const aspirationWindow = 50

// SearchStats reports what a search did.
type SearchStats struct {
	Nodes   uint64
	QNodes  uint64
	Depth   int // deepest fully completed iteration
	Score   int
	Elapsed time.Duration
}

// searchContext owns all mutable search state: the transposition
// table, killer and history tables, the repetition stack and the time
// latch. One context must not run two searches concurrently.
type searchContext struct {
	tt    *TranspositionTable
	stats SearchStats

	start    time.Time
	budget   time.Duration
	stop     bool
	stopFlag *atomic.Bool // cooperative external stop, may be nil

	killers    [MaxPly][2]board.Move
	history    [2][64][64]int
	repetition []uint64
}

func newSearchContext(tt *TranspositionTable, stopFlag *atomic.Bool) *searchContext {
	return &searchContext{
		tt:         tt,
		stopFlag:   stopFlag,
		repetition: make([]uint64, 0, MaxPly+8),
	}
}

// timeUp latches the stop flag once the budget is spent or the caller
// has asked for a stop. All recursion returns 0 once it latches.
func (sc *searchContext) timeUp() bool {
	if sc.stop {
		return true
	}
	if sc.stopFlag != nil && sc.stopFlag.Load() {
		sc.stop = true
		return true
	}
	if time.Since(sc.start) >= sc.budget {
		sc.stop = true
		return true
	}
	return false
}

// repetitions counts how often hash already occurs in the current
// line. Two occurrences of the position in the line count as a draw.
func (sc *searchContext) repetitions(hash uint64) int {
	n := 0
	for _, h := range sc.repetition {
		if h == hash {
			n++
		}
	}
	return n
}

// quiescence searches captures, en passant and promotions only, with a
// stand-pat cutoff, to settle tactics past the nominal horizon.
func (sc *searchContext) quiescence(pos *board.Position, alpha, beta int) int {
	if sc.timeUp() {
		return 0
	}
	sc.stats.QNodes++

	stand := Evaluate(pos)
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	var pseudo board.MoveList
	pos.GeneratePseudoMoves(&pseudo)

	var noisy board.MoveList
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if !m.IsCapture && !m.IsEnPassant && m.Promo == board.NoPieceType {
			continue
		}
		if u, ok := pos.MakeMove(m); ok {
			pos.UnmakeMove(u)
			noisy.Add(m)
		}
	}

	orderCaptures(pos, &noisy)

	for i := 0; i < noisy.Len(); i++ {
		u, ok := pos.MakeMove(noisy.Get(i))
		if !ok {
			continue
		}
		score := -sc.quiescence(pos, -beta, -alpha)
		pos.UnmakeMove(u)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// negamax is the alpha-beta search over one mutable position.
func (sc *searchContext) negamax(pos *board.Position, depth, alpha, beta, ply int) int {
	if sc.timeUp() {
		return 0
	}
	sc.stats.Nodes++

	// draws
	if pos.InsufficientMaterial() {
		return 0
	}
	if pos.HalfMoveClock >= 100 {
		return 0
	}
	if sc.repetitions(pos.Hash) >= 2 {
		return 0
	}

	// transposition table: the move is usable at any depth, the score
	// only at sufficient depth and subject to its bound flag
	ttMove := board.NoMove
	if e := sc.tt.Probe(pos.Hash); e.Key == pos.Hash {
		ttMove = e.BestMove
		if int(e.Depth) >= depth {
			s := int(e.Score)
			switch e.Flag {
			case TTExact:
				return s
			case TTLower:
				if s > alpha {
					alpha = s
				}
			case TTUpper:
				if s < beta {
					beta = s
				}
			}
			if alpha >= beta {
				return s
			}
		}
	}

	moves := pos.GenerateLegalMoves()

	if depth == 0 {
		return sc.quiescence(pos, alpha, beta)
	}

	if moves.Len() == 0 {
		if pos.InCheck(pos.SideToMove) {
			return -MateScore + ply
		}
		return 0 // stalemate
	}

	sc.orderMoves(pos, moves, ttMove, ply)

	best := -Infinity
	bestMove := board.NoMove
	originalAlpha := alpha

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)

		u, ok := pos.MakeMove(m)
		if !ok {
			continue
		}
		sc.repetition = append(sc.repetition, pos.Hash)

		newDepth := depth - 1
		var score int

		// late-move reduction: late quiet moves that do not give check
		// are tried a ply shallower with a null window first
		if newDepth >= 3 && i >= 4 && m.IsQuiet() && !pos.InCheck(pos.SideToMove) {
			score = -sc.negamax(pos, newDepth-1, -alpha-1, -alpha, ply+1)
			if score > alpha {
				score = -sc.negamax(pos, newDepth, -beta, -alpha, ply+1)
			}
		} else {
			score = -sc.negamax(pos, newDepth, -beta, -alpha, ply+1)
		}

		sc.repetition = sc.repetition[:len(sc.repetition)-1]
		pos.UnmakeMove(u)

		if sc.stop {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if m.IsQuiet() {
				sc.updateKillers(m, ply)
				sc.updateHistory(pos.SideToMove, m, depth)
			}
			break
		}
	}

	flag := TTExact
	if best <= originalAlpha {
		flag = TTUpper
	} else if best >= beta {
		flag = TTLower
	}
	sc.tt.Store(pos.Hash, depth, best, flag, bestMove)

	return best
}

// searchRoot runs iterative deepening over the root moves. Only a
// fully completed iteration may update the returned move and score;
// iterations cut short by the clock are discarded.
func (sc *searchContext) searchRoot(pos *board.Position, maxDepth int, budget time.Duration) (board.Move, SearchStats) {
	sc.stats = SearchStats{}
	sc.start = time.Now()
	sc.budget = budget
	sc.stop = false

	// the current position seeds the repetition line
	sc.repetition = sc.repetition[:0]
	sc.repetition = append(sc.repetition, pos.Hash)

	rootMoves := pos.GenerateLegalMoves()
	if rootMoves.Len() == 0 {
		sc.stats.Elapsed = time.Since(sc.start)
		return board.NoMove, sc.stats
	}

	bestMove := rootMoves.Get(0)
	bestScore := -Infinity

	for d := 1; d <= maxDepth; d++ {
		if sc.timeUp() {
			break
		}

		alpha, beta := -Infinity, Infinity
		if d >= 3 {
			alpha = bestScore - aspirationWindow
			beta = bestScore + aspirationWindow
		}

		ttMove := board.NoMove
		if e := sc.tt.Probe(pos.Hash); e.Key == pos.Hash {
			ttMove = e.BestMove
		}
		sc.orderMoves(pos, rootMoves, ttMove, 0)

		localBest := -Infinity
		localMove := rootMoves.Get(0)

		for i := 0; i < rootMoves.Len(); i++ {
			if sc.timeUp() {
				break
			}
			m := rootMoves.Get(i)
			u, ok := pos.MakeMove(m)
			if !ok {
				continue
			}

			sc.repetition = append(sc.repetition, pos.Hash)
			score := -sc.negamax(pos, d-1, -beta, -alpha, 1)
			sc.repetition = sc.repetition[:len(sc.repetition)-1]
			pos.UnmakeMove(u)

			if sc.stop {
				break
			}

			if score > localBest {
				localBest = score
				localMove = m
			}
			if score > alpha {
				alpha = score
			}

			// aspiration fail-high: widen and re-search this move with
			// the full window, then leave the root loop
			if alpha >= beta {
				alpha, beta = -Infinity, Infinity
				if u2, ok2 := pos.MakeMove(m); ok2 {
					sc.repetition = append(sc.repetition, pos.Hash)
					score2 := -sc.negamax(pos, d-1, -Infinity, Infinity, 1)
					sc.repetition = sc.repetition[:len(sc.repetition)-1]
					pos.UnmakeMove(u2)
					if !sc.stop && score2 > localBest {
						localBest = score2
						localMove = m
					}
				}
				break
			}
		}

		if !sc.stop {
			bestScore = localBest
			bestMove = localMove
			sc.stats.Depth = d
			sc.stats.Score = bestScore
		}
	}

	sc.stats.Elapsed = time.Since(sc.start)
	return bestMove, sc.stats
}
