package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppppp2p/5p2/6pP/8/8/PPPPPPP1/RNBQKBNR w KQkq g6 0 3",
		"8/P7/8/8/8/8/8/k6K w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 12 40",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%s): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestParseFENDefaults(t *testing.T) {
	// halfmove clock and fullmove number are optional
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatal(err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("defaults wrong: clock=%d move=%d", pos.HalfMoveClock, pos.FullMoveNumber)
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq -",        // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq -", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9", // bad ep square
		"9/8/8/8/8/8/8/8 w - -",                                // bad rank width
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) succeeded, want error", fen)
		}
	}
}

func TestParseFENHash(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppppp2p/5p2/6pP/8/8/PPPPPPP1/RNBQKBNR w KQkq g6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	if pos.Hash == 0 {
		t.Error("parsed position has zero hash")
	}
	if pos.Hash != pos.RecomputeHash() {
		t.Error("parsed hash differs from recompute")
	}

	// the en passant file participates in the hash
	noEP, err := ParseFEN("rnbqkbnr/ppppp2p/5p2/6pP/8/8/PPPPPPP1/RNBQKBNR w KQkq - 0 3")
	if err != nil {
		t.Fatal(err)
	}
	if noEP.Hash == pos.Hash {
		t.Error("positions differing only in en passant target share a hash")
	}
}
