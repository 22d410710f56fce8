package board

// Attack detection walks geometric rays and offset tables directly on
// the mailbox. It never calls the move generator, so legality checks
// cannot recurse back into it.

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var orthogonalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsSquareAttacked reports whether color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	f, r := sq.File(), sq.Rank()

	// pawns: look one rank toward the attacker
	pr := r - 1
	if by == Black {
		pr = r + 1
	}
	if pr >= 0 && pr < 8 {
		for _, df := range [2]int{-1, 1} {
			nf := f + df
			if nf < 0 || nf > 7 {
				continue
			}
			pc := p.Board[NewSquare(nf, pr)]
			if pc.Type == Pawn && pc.Color == by {
				return true
			}
		}
	}

	for _, d := range knightOffsets {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		pc := p.Board[NewSquare(nf, nr)]
		if pc.Type == Knight && pc.Color == by {
			return true
		}
	}

	for _, d := range kingOffsets {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		pc := p.Board[NewSquare(nf, nr)]
		if pc.Type == King && pc.Color == by {
			return true
		}
	}

	// sliders: walk each ray to the first occupied square
	for _, d := range diagonalDirs {
		if p.rayHits(f, r, d[0], d[1], by, Bishop) {
			return true
		}
	}
	for _, d := range orthogonalDirs {
		if p.rayHits(f, r, d[0], d[1], by, Rook) {
			return true
		}
	}

	return false
}

// rayHits walks from (f,r) in direction (df,dr) and reports whether the
// first piece hit is a slider of color by: the given type or a queen.
func (p *Position) rayHits(f, r, df, dr int, by Color, slider PieceType) bool {
	nf, nr := f+df, r+dr
	for nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
		pc := p.Board[NewSquare(nf, nr)]
		if !pc.IsNone() {
			return pc.Color == by && (pc.Type == slider || pc.Type == Queen)
		}
		nf += df
		nr += dr
	}
	return false
}

// InCheck reports whether c's king is attacked by the opponent.
func (p *Position) InCheck(c Color) bool {
	k := p.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return p.IsSquareAttacked(k, c.Other())
}
