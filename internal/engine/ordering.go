package engine

import "github.com/quietpawn/quietpawn/internal/board"

// Move ordering scores; higher is searched first.
const (
	ttMoveScore     = 1000000
	captureBase     = 100000
	killerScore1    = 90000
	killerScore2    = 80000
	historyCap      = 90000
	historyDepthMul = 8
)

// mvvLVA scores a capture as 10*victim - attacker. The en passant
// victim is a pawn.
func mvvLVA(pos *board.Position, m board.Move) int {
	attacker := pos.At(m.From).Type.Value()
	victim := 0
	if m.IsEnPassant {
		victim = board.Pawn.Value()
	} else if m.IsCapture {
		victim = pos.At(m.To).Type.Value()
	}
	return victim*10 - attacker
}

// scoreMove ranks m for ordering: TT move, then captures by MVV-LVA,
// then the two killers at this ply, then history.
func (sc *searchContext) scoreMove(pos *board.Position, m, ttMove board.Move, ply int) int {
	if m.From == ttMove.From && m.To == ttMove.To && m.Promo == ttMove.Promo {
		return ttMoveScore
	}

	if m.IsCapture || m.IsEnPassant {
		return captureBase + mvvLVA(pos, m)
	}

	if ply < MaxPly {
		if m == sc.killers[ply][0] {
			return killerScore1
		}
		if m == sc.killers[ply][1] {
			return killerScore2
		}
	}

	return sc.history[pos.SideToMove][m.From][m.To]
}

// orderMoves sorts ml in place by descending ordering score. Selection
// sort is plenty for lists of at most a few dozen moves.
func (sc *searchContext) orderMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move, ply int) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = sc.scoreMove(pos, ml.Get(i), ttMove, ply)
	}
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			ml.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// orderCaptures sorts ml by MVV-LVA only, for quiescence.
func orderCaptures(pos *board.Position, ml *board.MoveList) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = mvvLVA(pos, ml.Get(i))
	}
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			ml.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// updateKillers records a quiet move that caused a beta cutoff at ply.
func (sc *searchContext) updateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if sc.killers[ply][0] == m {
		return
	}
	sc.killers[ply][1] = sc.killers[ply][0]
	sc.killers[ply][0] = m
}

// updateHistory bumps the history counter for a quiet cutoff move by
// depth²·8, capped so long analyses cannot overflow the ordering.
func (sc *searchContext) updateHistory(side board.Color, m board.Move, depth int) {
	h := sc.history[side][m.From][m.To] + depth*depth*historyDepthMul
	if h > historyCap {
		h = historyCap
	}
	sc.history[side][m.From][m.To] = h
}
