package tui

import (
	"strings"

	"github.com/quietpawn/quietpawn/internal/board"
)

// RenderBoard renders the position in a fixed-width grid, rank 8 at
// the top, with the last move's squares bracketed.
func RenderBoard(pos *board.Position, lastMove board.Move) string {
	var b strings.Builder

	b.WriteString("    a  b  c  d  e  f  g  h\n")
	b.WriteString("  +------------------------+\n")

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte('1' + rank))
		b.WriteString(" |")
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			mark := lastMove != board.NoMove && (sq == lastMove.From || sq == lastMove.To)
			b.WriteString(cell(pos.At(sq), mark))
		}
		b.WriteString("| ")
		b.WriteByte(byte('1' + rank))
		b.WriteByte('\n')
	}

	b.WriteString("  +------------------------+\n")
	b.WriteString("    a  b  c  d  e  f  g  h\n")
	return b.String()
}

// cell returns a fixed-width 3-char cell for one square.
func cell(p board.Piece, marked bool) string {
	ch := "."
	if !p.IsNone() {
		ch = p.String()
	}
	if marked {
		return "[" + ch + "]"
	}
	return " " + ch + " "
}
