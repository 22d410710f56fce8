package board

import "testing"

// TestMoveUCIRoundTrip renders every legal move and parses it back,
// expecting structural equality, across positions covering quiet
// moves, captures, castling, en passant and promotion.
func TestMoveUCIRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppppp2p/5p2/6pP/8/8/PPPPPPP1/RNBQKBNR w KQkq g6 0 3",
		"8/P7/8/8/8/8/8/k6K w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq -",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%s): %v", fen, err)
		}
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			parsed, err := ParseMove(m.UCI(), pos)
			if err != nil {
				t.Fatalf("%s: ParseMove(%s): %v", fen, m.UCI(), err)
			}
			if parsed != m {
				t.Errorf("%s: round trip %s: got %+v, want %+v", fen, m.UCI(), parsed, m)
			}
		}
	}
}

func TestMoveRendering(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{From: E2, To: E4}, "e2e4"},
		{Move{From: E1, To: G1, IsCastle: true}, "e1g1"},
		{Move{From: E1, To: C1, IsCastle: true}, "e1c1"},
		{Move{From: E8, To: G8, IsCastle: true}, "e8g8"},
		{Move{From: H5, To: G6, IsCapture: true, IsEnPassant: true}, "h5g6"},
		{Move{From: A7, To: A8, Promo: Queen}, "a7a8q"},
		{Move{From: A7, To: A8, Promo: Knight}, "a7a8n"},
		{NoMove, "0000"},
	}

	for _, tc := range tests {
		if got := tc.m.UCI(); got != tc.want {
			t.Errorf("UCI(%+v) = %q, want %q", tc.m, got, tc.want)
		}
	}
}

func TestParseMoveFlags(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m, err := ParseMove("e1g1", pos)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCastle {
		t.Errorf("e1g1 with the king on e1 should parse as castling")
	}

	m, err = ParseMove("a1a8", pos)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsCapture || m.IsCastle || m.IsEnPassant {
		t.Errorf("a1a8 should parse as a plain capture, got %+v", m)
	}

	if _, err := ParseMove("e3e4", pos); err == nil {
		t.Errorf("expected error for a move from an empty square")
	}
	if _, err := ParseMove("e1", pos); err == nil {
		t.Errorf("expected error for a truncated move string")
	}
	if _, err := ParseMove("e7e8x", pos); err == nil {
		t.Errorf("expected error for a bad promotion suffix")
	}
}

func TestMoveListBasics(t *testing.T) {
	var ml MoveList
	if ml.Len() != 0 {
		t.Fatalf("fresh list has %d moves", ml.Len())
	}

	a := Move{From: E2, To: E4}
	b := Move{From: D2, To: D4}
	ml.Add(a)
	ml.Add(b)

	if ml.Len() != 2 || ml.Get(0) != a || ml.Get(1) != b {
		t.Errorf("list contents wrong: %v", ml.Slice())
	}
	if !ml.Contains(a) || ml.Contains(Move{From: A2, To: A3}) {
		t.Errorf("Contains wrong")
	}

	ml.Swap(0, 1)
	if ml.Get(0) != b {
		t.Errorf("Swap did not swap")
	}

	ml.Clear()
	if ml.Len() != 0 {
		t.Errorf("Clear left %d moves", ml.Len())
	}
}
