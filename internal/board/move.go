package board

import "fmt"

// Move describes a single move. Castling is encoded as the king's move
// (e1g1 etc.); en passant is the pawn's diagonal move onto the empty
// target square. Promotions carry the promoted piece type in Promo.
type Move struct {
	From        Square
	To          Square
	Promo       PieceType
	IsCapture   bool
	IsEnPassant bool
	IsCastle    bool
}

// NoMove is the null move sentinel (e.g. search on a terminal position).
var NoMove = Move{}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture && !m.IsEnPassant && m.Promo == NoPieceType
}

// UCI renders the move in UCI text: from square, to square, optional
// promotion suffix. The null move renders as "0000".
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promo {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}

// String is the UCI rendering.
func (m Move) String() string {
	return m.UCI()
}

// ParseMove parses UCI text ("e2e4", "e7e8q") against a position. The
// position supplies the moving piece so the capture, en passant and
// castling flags can be reconstructed.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	m := Move{From: from, To: to}

	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promo = Queen
		case 'r':
			m.Promo = Rook
		case 'b':
			m.Promo = Bishop
		case 'n':
			m.Promo = Knight
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	moving := pos.At(from)
	if moving.IsNone() {
		return NoMove, fmt.Errorf("no piece on %s", from)
	}

	switch {
	case moving.Type == King && abs(int(to)-int(from)) == 2:
		m.IsCastle = true
	case moving.Type == Pawn && to == pos.EnPassant && from.File() != to.File():
		m.IsEnPassant = true
		m.IsCapture = true
	case !pos.At(to).IsNone():
		m.IsCapture = true
	}

	return m, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MoveList is a fixed-capacity move accumulator; 256 covers the
// pseudo-legal maximum so generation never allocates.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap exchanges two moves.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether the list holds the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
