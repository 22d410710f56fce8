package storage

import (
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences on empty db: %v", err)
	}
	if prefs.TTSizeMB != 64 || !prefs.PlayWhite {
		t.Errorf("unexpected defaults: %+v", prefs)
	}

	prefs.Difficulty = 2
	prefs.SearchDepth = 7
	prefs.MoveTime = 5 * time.Second
	prefs.PlayWhite = false

	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.Difficulty != 2 || loaded.SearchDepth != 7 ||
		loaded.MoveTime != 5*time.Second || loaded.PlayWhite {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.LastPlayed.IsZero() {
		t.Errorf("LastPlayed not stamped on save")
	}
}

func TestRecordGameUpdatesStats(t *testing.T) {
	s := openTestStorage(t)

	rec := &GameRecord{
		StartFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		MovesUCI: []string{"e2e4", "e7e5", "d1h5", "b8c6", "f1c4", "g8f6", "h5f7"},
		Result:   ResultWin,
		Status:   "checkmate",
		Duration: 3 * time.Minute,
	}
	if err := s.RecordGame(rec, "medium"); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}
	if rec.Seq != 1 {
		t.Errorf("first game got seq %d, want 1", rec.Seq)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 || stats.WinsByDiff["medium"] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	if err := s.RecordGame(&GameRecord{Result: ResultDraw, Status: "stalemate"}, "medium"); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}
	stats, _ = s.LoadStats()
	if stats.GamesPlayed != 2 || stats.Draws != 1 {
		t.Errorf("stats after draw = %+v", stats)
	}
	if got := stats.WinRate(); got != 50 {
		t.Errorf("WinRate = %v, want 50", got)
	}
}

func TestListGamesNewestFirst(t *testing.T) {
	s := openTestStorage(t)

	for i := 0; i < 3; i++ {
		rec := &GameRecord{Result: ResultLoss, Status: "checkmate"}
		if err := s.RecordGame(rec, "easy"); err != nil {
			t.Fatalf("RecordGame #%d: %v", i, err)
		}
	}

	recs, err := s.ListGames(0)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if recs[0].Seq != 3 || recs[2].Seq != 1 {
		t.Errorf("records not newest first: %d %d %d", recs[0].Seq, recs[1].Seq, recs[2].Seq)
	}

	limited, err := s.ListGames(2)
	if err != nil {
		t.Fatalf("ListGames(2): %v", err)
	}
	if len(limited) != 2 || limited[0].Seq != 3 {
		t.Errorf("limit ignored: %+v", limited)
	}
}

func TestGameRecordRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	rec := &GameRecord{
		StartFEN: "8/P7/8/8/8/8/8/k6K w - - 0 1",
		MovesUCI: []string{"a7a8q"},
		Result:   ResultWin,
		Status:   "unfinished",
		Duration: time.Second,
	}
	if err := s.RecordGame(rec, "hard"); err != nil {
		t.Fatalf("RecordGame: %v", err)
	}

	recs, err := s.ListGames(1)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	got := recs[0]
	if got.StartFEN != rec.StartFEN || len(got.MovesUCI) != 1 || got.MovesUCI[0] != "a7a8q" {
		t.Errorf("loaded record = %+v", got)
	}
	if got.Result != ResultWin || got.Status != "unfinished" || got.Duration != time.Second {
		t.Errorf("loaded record = %+v", got)
	}
	if got.FinishedAt.IsZero() {
		t.Errorf("FinishedAt not stamped")
	}
}
