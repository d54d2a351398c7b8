// Package indexdb keeps a sqlite read-model of scored interactions so
// operators can query leaderboards without touching the simulation.
// Writes are buffered through a single writer goroutine; if the indexer
// falls behind, entries are dropped and the JSONL logs remain the
// source of truth.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"careerfair.ai/internal/sim/world"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan world.InteractionEntry
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

func Open(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan world.InteractionEntry, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

// OpenReadOnly is for query-only consumers (the admin CLI).
func OpenReadOnly(path string) (*SQLiteIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			conversation_id TEXT PRIMARY KEY,
			tick INTEGER NOT NULL,
			student_id INTEGER NOT NULL,
			recruiter_id INTEGER NOT NULL,
			score REAL NOT NULL,
			experience REAL NOT NULL,
			networking REAL NOT NULL,
			skills REAL NOT NULL,
			energy REAL NOT NULL,
			luck REAL NOT NULL,
			personality REAL NOT NULL,
			offer INTEGER NOT NULL,
			messages INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			quality REAL NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_student ON interactions(student_id, tick);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_recruiter ON interactions(recruiter_id, tick);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_offer ON interactions(offer, score);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		if s.ch != nil {
			close(s.ch)
			s.wg.Wait()
		}
		err = s.db.Close()
	})
	return err
}

// WriteInteraction satisfies world.InteractionLogger.
func (s *SQLiteIndex) WriteInteraction(entry world.InteractionEntry) error {
	if s == nil || s.closed.Load() || s.ch == nil {
		return nil
	}
	select {
	case s.ch <- entry:
	default:
		// Drop if the indexer falls behind.
	}
	return nil
}

func (s *SQLiteIndex) loop() {
	for entry := range s.ch {
		offer := 0
		if entry.Offer {
			offer = 1
		}
		_, _ = s.db.Exec(
			`INSERT OR REPLACE INTO interactions
			(conversation_id, tick, student_id, recruiter_id, score,
			 experience, networking, skills, energy, luck, personality,
			 offer, messages, duration_ms, quality, recorded_at)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			entry.ConversationID, entry.Tick, entry.StudentID, entry.RecruiterID, entry.Score,
			entry.Experience, entry.Networking, entry.Skills, entry.Energy, entry.Luck, entry.Personality,
			offer, entry.Messages, entry.DurationMs, entry.Quality,
			time.Now().UTC().Format(time.RFC3339),
		)
	}
}

type LeaderboardRow struct {
	StudentID    int     `json:"student_id"`
	Offers       int     `json:"offers"`
	Interactions int     `json:"interactions"`
	BestScore    float64 `json:"best_score"`
	AvgScore     float64 `json:"avg_score"`
}

// Leaderboard ranks students by offers received, then best score.
func (s *SQLiteIndex) Leaderboard(limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT student_id, SUM(offer), COUNT(*), MAX(score), AVG(score)
		 FROM interactions GROUP BY student_id
		 ORDER BY SUM(offer) DESC, MAX(score) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.StudentID, &r.Offers, &r.Interactions, &r.BestScore, &r.AvgScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type InteractionRow struct {
	ConversationID string  `json:"conversation_id"`
	Tick           uint64  `json:"tick"`
	StudentID      int     `json:"student_id"`
	RecruiterID    int     `json:"recruiter_id"`
	Score          float64 `json:"score"`
	Offer          bool    `json:"offer"`
	Messages       int     `json:"messages"`
	Quality        float64 `json:"quality"`
	RecordedAt     string  `json:"recorded_at"`
}

// RecentInteractions lists the latest scored conversations, newest first.
func (s *SQLiteIndex) RecentInteractions(limit int) ([]InteractionRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT conversation_id, tick, student_id, recruiter_id, score, offer, messages, quality, recorded_at
		 FROM interactions ORDER BY tick DESC, conversation_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InteractionRow
	for rows.Next() {
		var r InteractionRow
		var offer int
		if err := rows.Scan(&r.ConversationID, &r.Tick, &r.StudentID, &r.RecruiterID, &r.Score, &offer, &r.Messages, &r.Quality, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Offer = offer != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Offers lists only the conversations that ended in a job offer.
func (s *SQLiteIndex) Offers(limit int) ([]InteractionRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT conversation_id, tick, student_id, recruiter_id, score, offer, messages, quality, recorded_at
		 FROM interactions WHERE offer = 1 ORDER BY tick DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InteractionRow
	for rows.Next() {
		var r InteractionRow
		var offer int
		if err := rows.Scan(&r.ConversationID, &r.Tick, &r.StudentID, &r.RecruiterID, &r.Score, &offer, &r.Messages, &r.Quality, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Offer = offer != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
