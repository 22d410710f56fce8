package engine

import "github.com/quietpawn/quietpawn/internal/board"

// Evaluation weights.
const (
	bishopPairBonus     = 30
	doubledPawnPenalty  = 12 // per extra pawn on a file
	isolatedPawnPenalty = 10
	mobilityWeight      = 2
	castleLossPenalty   = 10
)

// phaseWeight counts non-pawn, non-king material toward the game
// phase: N=B=1, R=2, Q=4. The total is clamped to [0,24]; 8 or less
// selects the endgame king table.
var phaseWeight = [7]int{0, 0, 1, 1, 2, 4, 0}

const endgamePhase = 8

// Evaluate returns a static score in centipawns from the side-to-move
// perspective: positive means the side to move stands better.
func Evaluate(pos *board.Position) int {
	phase := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		phase += phaseWeight[pos.Board[sq].Type]
	}
	if phase > 24 {
		phase = 24
	}
	endgameKing := phase <= endgamePhase

	material := 0
	pst := 0
	var bishops [2]int
	var pawnFiles [2][8]int

	for sq := board.A1; sq <= board.H8; sq++ {
		pc := pos.Board[sq]
		if pc.IsNone() {
			continue
		}

		idx := int(sq)
		if pc.Color == board.Black {
			idx = int(sq.Mirror())
		}
		ps := pstScore(pc.Type, idx, endgameKing)

		if pc.Color == board.White {
			material += pc.Type.Value()
			pst += ps
		} else {
			material -= pc.Type.Value()
			pst -= ps
		}

		switch pc.Type {
		case board.Bishop:
			bishops[pc.Color]++
		case board.Pawn:
			pawnFiles[pc.Color][sq.File()]++
		}
	}

	bishopPair := 0
	if bishops[board.White] >= 2 {
		bishopPair += bishopPairBonus
	}
	if bishops[board.Black] >= 2 {
		bishopPair -= bishopPairBonus
	}

	pawnStruct := 0
	for f := 0; f < 8; f++ {
		if n := pawnFiles[board.White][f]; n >= 2 {
			pawnStruct -= doubledPawnPenalty * (n - 1)
		}
		if n := pawnFiles[board.Black][f]; n >= 2 {
			pawnStruct += doubledPawnPenalty * (n - 1)
		}
		if pawnFiles[board.White][f] > 0 && isolatedOn(pawnFiles[board.White], f) {
			pawnStruct -= isolatedPawnPenalty
		}
		if pawnFiles[board.Black][f] > 0 && isolatedOn(pawnFiles[board.Black], f) {
			pawnStruct += isolatedPawnPenalty
		}
	}

	mobility := mobilityWeight * pseudoMoveDelta(pos)

	kingSafety := 0
	if !endgameKing {
		kingSafety -= kingCentrePenalty(pos.KingSquare(board.White))
		kingSafety += kingCentrePenalty(pos.KingSquare(board.Black))

		if pos.CastlingRights&(board.WhiteKingSideCastle|board.WhiteQueenSideCastle) == 0 {
			kingSafety -= castleLossPenalty
		}
		if pos.CastlingRights&(board.BlackKingSideCastle|board.BlackQueenSideCastle) == 0 {
			kingSafety += castleLossPenalty
		}
	}

	score := material + pst + bishopPair + pawnStruct + mobility + kingSafety

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}

func isolatedOn(files [8]int, f int) bool {
	left := f > 0 && files[f-1] > 0
	right := f < 7 && files[f+1] > 0
	return !left && !right
}

// pseudoMoveDelta counts pseudo moves for White minus Black on a local
// copy, flipping the side to move; legality is too expensive at eval
// nodes.
func pseudoMoveDelta(pos *board.Position) int {
	tmp := *pos
	var ml board.MoveList

	tmp.SideToMove = board.White
	tmp.GeneratePseudoMoves(&ml)
	white := ml.Len()

	tmp.SideToMove = board.Black
	tmp.GeneratePseudoMoves(&ml)
	black := ml.Len()

	return white - black
}

// kingCentrePenalty charges a middlegame king for lingering on the
// d/e/f files: 10 on either back rank, 20 one rank in, 35 two ranks in.
func kingCentrePenalty(k board.Square) int {
	if k == board.NoSquare {
		return 0
	}
	f, r := k.File(), k.Rank()
	if absInt(f-4) > 1 {
		return 0
	}
	switch r {
	case 0, 7:
		return 10
	case 1, 6:
		return 20
	case 2, 5:
		return 35
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
