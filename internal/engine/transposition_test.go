package engine

import (
	"testing"

	"github.com/quietpawn/quietpawn/internal/board"
)

func TestTranspositionTableSizePowerOfTwo(t *testing.T) {
	for _, mb := range []int{1, 16, 64} {
		tt := NewTranspositionTable(mb)
		n := tt.Size()
		if n == 0 || n&(n-1) != 0 {
			t.Errorf("%dMB table has %d entries, want a power of two", mb, n)
		}
	}
}

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0xDEADBEEFCAFE1234)
	best := board.Move{From: board.E2, To: board.E4}

	tt.Store(key, 5, 42, TTExact, best)

	e := tt.Probe(key)
	if e.Key != key {
		t.Fatalf("probe returned key %x, want %x", e.Key, key)
	}
	if e.Depth != 5 || e.Score != 42 || e.Flag != TTExact || e.BestMove != best {
		t.Errorf("entry = %+v", *e)
	}
}

func TestTranspositionReplacePolicy(t *testing.T) {
	tt := NewTranspositionTable(1)
	keyA := uint64(8) // same slot as keyB for any power-of-two mask >= 8
	keyB := keyA + tt.Size()

	// deeper entry wins the slot over a shallower different key
	tt.Store(keyA, 6, 10, TTExact, board.NoMove)
	tt.Store(keyB, 3, 20, TTExact, board.NoMove)
	if e := tt.Probe(keyA); e.Key != keyA {
		t.Errorf("shallower different-key store evicted a deeper entry")
	}

	// an equal-or-deeper different key replaces
	tt.Store(keyB, 6, 20, TTExact, board.NoMove)
	if e := tt.Probe(keyB); e.Key != keyB {
		t.Errorf("equal-depth store did not replace")
	}

	// the same key always updates, even at lower depth
	tt.Store(keyB, 1, 99, TTLower, board.NoMove)
	if e := tt.Probe(keyB); e.Score != 99 || e.Flag != TTLower {
		t.Errorf("same-key store did not update: %+v", *e)
	}
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(12345, 4, 7, TTExact, board.NoMove)
	tt.Clear()
	if e := tt.Probe(12345); e.Key != 0 {
		t.Errorf("Clear left entry %+v", *e)
	}
}
