package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys.
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyGameSeq     = "game_seq"
	gameKeyPrefix  = "game:"
)

// Result is the outcome of a finished game from the human player's
// point of view.
type Result int

const (
	ResultLoss Result = iota
	ResultWin
	ResultDraw
)

// String returns the PGN-style result marker.
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "1-0"
	case ResultLoss:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// Preferences stores user settings.
type Preferences struct {
	Difficulty  int           `json:"difficulty"` // engine.Difficulty value
	MoveTime    time.Duration `json:"move_time"`
	SearchDepth int           `json:"search_depth"`
	TTSizeMB    int           `json:"tt_size_mb"`
	PlayWhite   bool          `json:"play_white"`
	LastPlayed  time.Time     `json:"last_played"`
}

// DefaultPreferences returns the defaults for a fresh install.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty:  1, // medium
		MoveTime:    2 * time.Second,
		SearchDepth: 5,
		TTSizeMB:    64,
		PlayWhite:   true,
	}
}

// Stats aggregates finished games.
type Stats struct {
	GamesPlayed int            `json:"games_played"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Draws       int            `json:"draws"`
	WinsByDiff  map[string]int `json:"wins_by_difficulty"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{WinsByDiff: make(map[string]int)}
}

// WinRate returns the win percentage over all recorded games.
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// GameRecord is one finished game: the start position, the move list
// in UCI text, and the outcome.
type GameRecord struct {
	Seq       uint64        `json:"seq"`
	StartFEN  string        `json:"start_fen"`
	MovesUCI  []string      `json:"moves_uci"`
	Result    Result        `json:"result"`
	Status    string        `json:"status"` // checkmate, stalemate, ...
	Duration  time.Duration `json:"duration"`
	FinishedAt time.Time    `json:"finished_at"`
}

// Storage wraps BadgerDB.
type Storage struct {
	db *badger.DB
}

// Open opens the database under the platform data directory.
func Open() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens a database at an explicit directory (tests use a temp
// dir).
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences writes the user preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences reads preferences, falling back to defaults when the
// database has none.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	return prefs, err
}

// SaveStats writes the aggregate statistics.
func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats reads the statistics, empty when none recorded yet.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordGame persists a finished game under the next sequence key and
// folds its result into the statistics.
func (s *Storage) RecordGame(rec *GameRecord, difficulty string) error {
	seq, err := s.nextGameSeq()
	if err != nil {
		return err
	}
	rec.Seq = seq
	rec.FinishedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(seq), data)
	}); err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.GamesPlayed++
	switch rec.Result {
	case ResultWin:
		stats.Wins++
		stats.WinsByDiff[difficulty]++
	case ResultLoss:
		stats.Losses++
	case ResultDraw:
		stats.Draws++
	}
	return s.SaveStats(stats)
}

// ListGames returns the most recent records, newest first, capped at
// limit (0 = all).
func (s *Storage) ListGames(limit int) ([]GameRecord, error) {
	var recs []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// keys are big-endian sequence numbers, so iteration is oldest
	// first; reverse for newest first
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// nextGameSeq bumps and returns the game sequence counter.
func (s *Storage) nextGameSeq() (uint64, error) {
	var seq uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyGameSeq))
		if err == nil {
			err = item.Value(func(val []byte) error {
				if len(val) == 8 {
					seq = binary.BigEndian.Uint64(val)
				}
				return nil
			})
			if err != nil {
				return err
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		seq++
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], seq)
		return txn.Set([]byte(keyGameSeq), buf[:])
	})
	return seq, err
}

func gameKey(seq uint64) []byte {
	key := make([]byte, len(gameKeyPrefix)+8)
	copy(key, gameKeyPrefix)
	binary.BigEndian.PutUint64(key[len(gameKeyPrefix):], seq)
	return key
}
