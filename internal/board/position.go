package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by Play when the move is not legal in the
// current position. The position is left unchanged.
var ErrIllegalMove = errors.New("illegal move")

// CastlingRights is the 4-bit castling availability mask.
type CastlingRights uint8

const (
	WhiteKingSideCastle CastlingRights = 1 << iota // K
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling field ("KQkq", "-", ...).
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// UndoInfo carries everything needed to reverse a MakeMove: the move
// itself, the captured piece (the en passant victim square is implied
// by the move), and the prior en passant target, castling mask,
// halfmove clock and hash.
type UndoInfo struct {
	Move           Move
	Captured       Piece
	EnPassant      Square
	CastlingRights CastlingRights
	HalfMoveClock  int
	Hash           uint64
}

// Position is a complete chess position: a 64-entry mailbox plus game
// state. The Hash field is maintained incrementally by MakeMove and
// always equals RecomputeHash().
type Position struct {
	Board          [64]Piece
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square of a double pawn push, or NoSquare
	HalfMoveClock  int    // plies since the last pawn move or capture
	FullMoveNumber int
	Hash           uint64
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy returns an independent copy of the position.
func (p *Position) Copy() *Position {
	q := *p
	return &q
}

// At returns the piece on sq, or the empty piece.
func (p *Position) At(sq Square) Piece {
	return p.Board[sq]
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq].IsNone()
}

// KingSquare returns the square of c's king, or NoSquare if absent
// (only possible on hand-built boards).
func (p *Position) KingSquare(c Color) Square {
	for sq := A1; sq <= H8; sq++ {
		pc := p.Board[sq]
		if pc.Type == King && pc.Color == c {
			return sq
		}
	}
	return NoSquare
}

// castleClearMask maps the six castling-relevant squares to the rights
// cleared when a move touches them, as origin or destination. Captures
// on a rook's home square clear the victim's right too.
var castleClearMask = [64]CastlingRights{
	A1: WhiteQueenSideCastle,
	E1: WhiteKingSideCastle | WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A8: BlackQueenSideCastle,
	E8: BlackKingSideCastle | BlackQueenSideCastle,
	H8: BlackKingSideCastle,
}

// MakeMove applies m and fills an UndoInfo. It returns false, with the
// position restored, when the move would leave the mover's own king in
// check. Hash updates are interleaved with the board updates so the
// incremental-hash invariant holds at return.
func (p *Position) MakeMove(m Move) (UndoInfo, bool) {
	u := UndoInfo{
		Move:           m,
		EnPassant:      p.EnPassant,
		CastlingRights: p.CastlingRights,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}

	moving := p.Board[m.From]
	if moving.IsNone() {
		return u, false
	}
	us := moving.Color

	if moving.Type == Pawn || m.IsCapture || m.IsEnPassant {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	// hash: drop the old EP file, castling mask and side-to-move terms
	p.Hash ^= zobristEnPassant[epFileIndex(p.EnPassant)]
	p.Hash ^= zobristCastling[p.CastlingRights&0xF]
	if p.SideToMove == Black {
		p.Hash ^= zobristSideToMove
	}

	p.EnPassant = NoSquare

	// capture
	if m.IsEnPassant {
		capSq := m.To - 8
		if us == Black {
			capSq = m.To + 8
		}
		u.Captured = p.Board[capSq]
		if !u.Captured.IsNone() {
			p.Hash ^= zobristPiece[u.Captured.Color][u.Captured.Type][capSq]
		}
		p.Board[capSq] = NoPiece
	} else if m.IsCapture {
		u.Captured = p.Board[m.To]
		if !u.Captured.IsNone() {
			p.Hash ^= zobristPiece[u.Captured.Color][u.Captured.Type][m.To]
		}
	}

	// relocate the moving piece
	p.Hash ^= zobristPiece[us][moving.Type][m.From]
	p.Board[m.To] = moving
	p.Board[m.From] = NoPiece
	p.Hash ^= zobristPiece[us][moving.Type][m.To]

	// promotion: swap the pawn on To for the promoted piece
	if m.Promo != NoPieceType {
		p.Hash ^= zobristPiece[us][Pawn][m.To]
		p.Hash ^= zobristPiece[us][m.Promo][m.To]
		p.Board[m.To].Type = m.Promo
	}

	// castling: shift the rook alongside the king
	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m.To)
		rook := p.Board[rookFrom]
		p.Hash ^= zobristPiece[rook.Color][rook.Type][rookFrom]
		p.Hash ^= zobristPiece[rook.Color][rook.Type][rookTo]
		p.Board[rookTo] = rook
		p.Board[rookFrom] = NoPiece
	}

	p.CastlingRights &^= castleClearMask[m.From] | castleClearMask[m.To]

	if moving.Type == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassant = Square((int(m.From) + int(m.To)) / 2)
	}

	p.SideToMove = p.SideToMove.Other()
	if us == Black {
		p.FullMoveNumber++
	}

	// legality: the side that just moved may not be left in check
	if p.InCheck(us) {
		p.UnmakeMove(u)
		return u, false
	}

	// hash: fold in the new EP file, castling mask and side-to-move terms
	p.Hash ^= zobristEnPassant[epFileIndex(p.EnPassant)]
	p.Hash ^= zobristCastling[p.CastlingRights&0xF]
	if p.SideToMove == Black {
		p.Hash ^= zobristSideToMove
	}

	return u, true
}

// castleRookSquares maps a castling king destination to the rook's
// origin and destination.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	return NoSquare, NoSquare
}

// UnmakeMove reverses a MakeMove. The prior hash, en passant target,
// castling mask and halfmove clock are restored verbatim from the
// UndoInfo rather than recomputed.
func (p *Position) UnmakeMove(u UndoInfo) {
	m := u.Move

	p.SideToMove = p.SideToMove.Other()
	if p.SideToMove == Black {
		p.FullMoveNumber--
	}

	p.EnPassant = u.EnPassant
	p.CastlingRights = u.CastlingRights
	p.HalfMoveClock = u.HalfMoveClock
	p.Hash = u.Hash

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m.To)
		p.Board[rookFrom] = p.Board[rookTo]
		p.Board[rookTo] = NoPiece
	}

	p.Board[m.From] = p.Board[m.To]
	p.Board[m.To] = NoPiece

	if m.Promo != NoPieceType {
		p.Board[m.From].Type = Pawn
	}

	if m.IsEnPassant {
		capSq := m.To - 8
		if p.Board[m.From].Color == Black {
			capSq = m.To + 8
		}
		p.Board[capSq] = u.Captured
	} else if m.IsCapture {
		p.Board[m.To] = u.Captured
	}
}

// Play validates m against the legal move list and applies it. It is
// the external make operation: on an illegal move the position is
// untouched and ErrIllegalMove is returned.
func (p *Position) Play(m Move) (UndoInfo, error) {
	if !p.GenerateLegalMoves().Contains(m) {
		return UndoInfo{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	u, ok := p.MakeMove(m)
	if !ok {
		return UndoInfo{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return u, nil
}

// RecomputeHash computes the Zobrist hash from scratch over the board,
// side to move, castling mask and en passant file. MakeMove keeps the
// Hash field equal to this at all times.
func (p *Position) RecomputeHash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		pc := p.Board[sq]
		if pc.IsNone() {
			continue
		}
		h ^= zobristPiece[pc.Color][pc.Type][sq]
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	h ^= zobristCastling[p.CastlingRights&0xF]
	h ^= zobristEnPassant[epFileIndex(p.EnPassant)]
	return h
}

// Validate checks the structural invariants: exactly one king per
// side, no pawns on the back ranks, and a consistent incremental hash.
func (p *Position) Validate() error {
	var kings [2]int
	for sq := A1; sq <= H8; sq++ {
		pc := p.Board[sq]
		switch pc.Type {
		case King:
			kings[pc.Color]++
		case Pawn:
			if r := sq.Rank(); r == 0 || r == 7 {
				return fmt.Errorf("pawn on back rank %s", sq)
			}
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white has %d kings", kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black has %d kings", kings[Black])
	}
	if p.Hash != p.RecomputeHash() {
		return fmt.Errorf("incremental hash out of sync")
	}
	return nil
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.SideToMove) && !p.HasLegalMoves()
}

// InsufficientMaterial reports the drawn material configurations the
// engine recognizes: K vs K, K+minor vs K, and K+B vs K+B regardless
// of bishop colors. Any pawn, rook or queen disables the detection.
func (p *Position) InsufficientMaterial() bool {
	var minors, bishops [2]int
	for sq := A1; sq <= H8; sq++ {
		pc := p.Board[sq]
		switch pc.Type {
		case NoPieceType, King:
		case Knight:
			minors[pc.Color]++
		case Bishop:
			minors[pc.Color]++
			bishops[pc.Color]++
		default:
			return false
		}
	}
	w, b := minors[White], minors[Black]
	switch {
	case w == 0 && b == 0:
		return true
	case w == 1 && b == 0, w == 0 && b == 1:
		return true
	case w == 1 && b == 1 && bishops[White] == 1 && bishops[Black] == 1:
		return true
	}
	return false
}

// Status classifies the game state of the position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	InsufficientMaterialDraw
)

// String returns a display name for the status.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "draw by fifty-move rule"
	case InsufficientMaterialDraw:
		return "draw by insufficient material"
	}
	return "ongoing"
}

// GameStatus derives the game state from the position alone.
// Checkmate wins over the draw rules when both apply.
func (p *Position) GameStatus() Status {
	if !p.HasLegalMoves() {
		if p.InCheck(p.SideToMove) {
			return Checkmate
		}
		return Stalemate
	}
	if p.HalfMoveClock >= 100 {
		return FiftyMoveDraw
	}
	if p.InsufficientMaterial() {
		return InsufficientMaterialDraw
	}
	return Ongoing
}

// String renders the board with rank/file labels and the game state
// fields, for logs and debugging.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			pc := p.Board[NewSquare(file, rank)]
			if pc.IsNone() {
				s += ". "
			} else {
				s += pc.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}
