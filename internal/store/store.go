// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordtick/internal/corpus"
	"github.com/verte-zerg/wordtick/internal/game"
	"github.com/verte-zerg/wordtick/internal/puzzle"
	"github.com/verte-zerg/wordtick/internal/stats"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Record keys in the records table.
const (
	recordGameState = "gameState"
	recordGameStats = "gameStats"
	recordInstallID = "installID"
)

// Store wraps SQLite access for game state, statistics, and history.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// savedGame is the serialized form of an in-progress or finished game.
type savedGame struct {
	PuzzleIndex     int      `json:"puzzleIndex"`
	Solution        string   `json:"solution"`
	Guesses         []string `json:"guesses"`
	OutcomeReported bool     `json:"outcomeReported"`
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			puzzle_index INTEGER NOT NULL,
			guesses INTEGER NOT NULL,
			won INTEGER NOT NULL,
			completed_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_completed_at ON games(completed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadGame returns the persisted game when it belongs to the active puzzle,
// or a fresh empty game otherwise. Missing, unparseable, and stale records
// degrade to the fresh game, as does any record carrying a guess that is not
// a valid corpus word; the old state is discarded, not merged.
func (s *Store) LoadGame(ctx context.Context, c *corpus.Corpus, active puzzle.Puzzle) *game.Game {
	raw, ok := s.getRecord(ctx, recordGameState)
	if !ok {
		return game.New(c, active)
	}
	var sg savedGame
	if err := json.Unmarshal([]byte(raw), &sg); err != nil {
		s.log.Warn().Err(err).Msg("discarding corrupt game state record")
		return game.New(c, active)
	}
	if sg.PuzzleIndex != active.Index || sg.Solution != active.Solution {
		return game.New(c, active)
	}
	for _, guess := range sg.Guesses {
		if len(guess) != game.WordLength || !c.IsAccepted(guess) {
			s.log.Warn().Str("guess", guess).Msg("discarding game state with invalid guess")
			return game.New(c, active)
		}
	}
	return game.Restore(c, active, sg.Guesses, sg.OutcomeReported)
}

// SaveGame persists the game as a single record write.
func (s *Store) SaveGame(ctx context.Context, g *game.Game) error {
	data, err := marshalGame(g)
	if err != nil {
		return err
	}
	return s.setRecord(ctx, recordGameState, data)
}

// SaveOutcome persists the finished game, the updated statistics, and the
// history row in one transaction, so a crash cannot separate the recorded
// stats from the game's reported flag.
func (s *Store) SaveOutcome(ctx context.Context, g *game.Game, gs stats.GameStats, r stats.GameRecord) error {
	gameData, err := marshalGame(g)
	if err != nil {
		return err
	}
	statsData, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	if err := setRecordOn(ctx, tx, recordGameStats, string(statsData)); err != nil {
		return err
	}
	if err := insertGameResultOn(ctx, tx, r); err != nil {
		return err
	}
	if err := setRecordOn(ctx, tx, recordGameState, gameData); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outcome: %w", err)
	}
	return nil
}

func marshalGame(g *game.Game) (string, error) {
	sg := savedGame{
		PuzzleIndex:     g.Puzzle().Index,
		Solution:        g.Puzzle().Solution,
		Guesses:         g.Guesses(),
		OutcomeReported: g.OutcomeReported(),
	}
	data, err := json.Marshal(sg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal game state: %w", err)
	}
	return string(data), nil
}

// LoadStats returns the persisted statistics, or zero-value defaults when
// the record is missing or unparseable.
func (s *Store) LoadStats(ctx context.Context) stats.GameStats {
	raw, ok := s.getRecord(ctx, recordGameStats)
	if !ok {
		return stats.GameStats{}
	}
	var gs stats.GameStats
	if err := json.Unmarshal([]byte(raw), &gs); err != nil {
		s.log.Warn().Err(err).Msg("discarding corrupt stats record")
		return stats.GameStats{}
	}
	return gs
}

// SaveStats persists the statistics record.
func (s *Store) SaveStats(ctx context.Context, gs stats.GameStats) error {
	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return s.setRecord(ctx, recordGameStats, string(data))
}

// InstallID returns the stable anonymous identifier for this installation,
// generating and persisting one on first use.
func (s *Store) InstallID(ctx context.Context) string {
	if id, ok := s.getRecord(ctx, recordInstallID); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	if err := s.setRecord(ctx, recordInstallID, id); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist install id")
	}
	return id
}

// InsertGameResult appends one completed game to the history table.
func (s *Store) InsertGameResult(ctx context.Context, r stats.GameRecord) error {
	return insertGameResultOn(ctx, s.db, r)
}

func insertGameResultOn(ctx context.Context, e execContexter, r stats.GameRecord) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := e.ExecContext(ctx,
		`INSERT INTO games (puzzle_index, guesses, won, completed_at) VALUES (?, ?, ?, ?)`,
		r.PuzzleIndex, r.Guesses, won, r.CompletedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// RecentGames returns the most recent completed games, newest first.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]stats.GameRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT puzzle_index, guesses, won, completed_at
		 FROM games
		 ORDER BY completed_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []stats.GameRecord
	for rows.Next() {
		var r stats.GameRecord
		var won int
		var completedAt string
		if err := rows.Scan(&r.PuzzleIndex, &r.Guesses, &won, &completedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, completedAt)
		if err != nil {
			return nil, err
		}
		r.Won = won != 0
		r.CompletedAt = parsed
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) getRecord(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to read record")
		}
		return "", false
	}
	return value, true
}

func (s *Store) setRecord(ctx context.Context, key, value string) error {
	return setRecordOn(ctx, s.db, key, value)
}

func setRecordOn(ctx context.Context, e execContexter, key, value string) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// execContexter is satisfied by both *sql.DB and *sql.Tx.
type execContexter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
