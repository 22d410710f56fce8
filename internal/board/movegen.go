package board

// GeneratePseudoMoves fills out with every move the side to move could
// make ignoring self-check. Castling is the exception: it is emitted
// only when fully legal (rights intact, path empty, king not in or
// moving through check).
func (p *Position) GeneratePseudoMoves(out *MoveList) {
	out.Clear()
	us := p.SideToMove

	for sq := A1; sq <= H8; sq++ {
		pc := p.Board[sq]
		if pc.IsNone() || pc.Color != us {
			continue
		}
		switch pc.Type {
		case Pawn:
			p.genPawnMoves(sq, us, out)
		case Knight:
			p.genOffsetMoves(sq, us, knightOffsets[:], out)
		case Bishop:
			p.genSliderMoves(sq, us, diagonalDirs[:], out)
		case Rook:
			p.genSliderMoves(sq, us, orthogonalDirs[:], out)
		case Queen:
			p.genSliderMoves(sq, us, diagonalDirs[:], out)
			p.genSliderMoves(sq, us, orthogonalDirs[:], out)
		case King:
			p.genOffsetMoves(sq, us, kingOffsets[:], out)
			p.genCastleMoves(sq, us, out)
		}
	}
}

func (p *Position) genPawnMoves(from Square, us Color, out *MoveList) {
	f, r := from.File(), from.Rank()
	dir, startRank, promoRank := 1, 1, 7
	if us == Black {
		dir, startRank, promoRank = -1, 6, 0
	}

	pushPawn := func(to Square, capture, ep bool) {
		if to.Rank() == promoRank {
			for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				out.Add(Move{From: from, To: to, Promo: promo, IsCapture: capture})
			}
			return
		}
		out.Add(Move{From: from, To: to, IsCapture: capture, IsEnPassant: ep})
	}

	// pushes
	nr := r + dir
	if nr >= 0 && nr < 8 {
		one := NewSquare(f, nr)
		if p.IsEmpty(one) {
			pushPawn(one, false, false)
			if r == startRank {
				two := NewSquare(f, r+2*dir)
				if p.IsEmpty(two) {
					out.Add(Move{From: from, To: two})
				}
			}
		}
	}

	// diagonal captures and en passant
	for _, df := range [2]int{-1, 1} {
		nf := f + df
		tr := r + dir
		if nf < 0 || nf > 7 || tr < 0 || tr > 7 {
			continue
		}
		to := NewSquare(nf, tr)
		target := p.Board[to]
		if !target.IsNone() && target.Color != us {
			pushPawn(to, true, false)
		}
		if p.EnPassant == to {
			adj := p.Board[NewSquare(nf, r)]
			if adj.Type == Pawn && adj.Color != us {
				pushPawn(to, true, true)
			}
		}
	}
}

func (p *Position) genOffsetMoves(from Square, us Color, offsets [][2]int, out *MoveList) {
	f, r := from.File(), from.Rank()
	for _, d := range offsets {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		to := NewSquare(nf, nr)
		target := p.Board[to]
		if target.IsNone() {
			out.Add(Move{From: from, To: to})
		} else if target.Color != us {
			out.Add(Move{From: from, To: to, IsCapture: true})
		}
	}
}

func (p *Position) genSliderMoves(from Square, us Color, dirs [][2]int, out *MoveList) {
	f, r := from.File(), from.Rank()
	for _, d := range dirs {
		nf, nr := f+d[0], r+d[1]
		for nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			to := NewSquare(nf, nr)
			target := p.Board[to]
			if target.IsNone() {
				out.Add(Move{From: from, To: to})
			} else {
				if target.Color != us {
					out.Add(Move{From: from, To: to, IsCapture: true})
				}
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
}

func (p *Position) genCastleMoves(from Square, us Color, out *MoveList) {
	home, kingSide, queenSide := E1, WhiteKingSideCastle, WhiteQueenSideCastle
	if us == Black {
		home, kingSide, queenSide = E8, BlackKingSideCastle, BlackQueenSideCastle
	}
	if from != home {
		return
	}
	them := us.Other()

	if p.CastlingRights&kingSide != 0 &&
		p.IsEmpty(home+1) && p.IsEmpty(home+2) &&
		p.Board[home+3] == NewPiece(Rook, us) {
		if !p.InCheck(us) &&
			!p.IsSquareAttacked(home+1, them) &&
			!p.IsSquareAttacked(home+2, them) {
			out.Add(Move{From: home, To: home + 2, IsCastle: true})
		}
	}
	if p.CastlingRights&queenSide != 0 &&
		p.IsEmpty(home-1) && p.IsEmpty(home-2) && p.IsEmpty(home-3) &&
		p.Board[home-4] == NewPiece(Rook, us) {
		if !p.InCheck(us) &&
			!p.IsSquareAttacked(home-1, them) &&
			!p.IsSquareAttacked(home-2, them) {
			out.Add(Move{From: home, To: home - 2, IsCastle: true})
		}
	}
}

// GenerateLegalMoves returns the legal moves for the side to move by
// filtering the pseudo moves through MakeMove's self-check rejection.
// This is the canonical legality oracle.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.GeneratePseudoMoves(&pseudo)

	legal := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if u, ok := p.MakeMove(m); ok {
			legal.Add(m)
			p.UnmakeMove(u)
		}
	}
	return legal
}

// GenerateLegalMovesFrom returns the legal moves originating on from.
func (p *Position) GenerateLegalMovesFrom(from Square) *MoveList {
	all := p.GenerateLegalMoves()
	out := &MoveList{}
	for i := 0; i < all.Len(); i++ {
		if m := all.Get(i); m.From == from {
			out.Add(m)
		}
	}
	return out
}
