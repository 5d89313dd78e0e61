package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordtick/internal/corpus"
	"github.com/verte-zerg/wordtick/internal/game"
	"github.com/verte-zerg/wordtick/internal/puzzle"
	"github.com/verte-zerg/wordtick/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "wordtick.db")
	s, err := Open(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func testCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New([]string{"apple", "berry", "crane"}, nil)
	if err != nil {
		t.Fatalf("build corpus: %v", err)
	}
	return c
}

func TestLoadGameMissingRecord(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	active := puzzle.Puzzle{Solution: "APPLE", Index: 0}

	g := s.LoadGame(context.Background(), c, active)
	if len(g.Guesses()) != 0 {
		t.Fatalf("expected fresh game, got guesses %v", g.Guesses())
	}
	if g.Puzzle() != active {
		t.Fatalf("fresh game carries wrong puzzle: %+v", g.Puzzle())
	}
}

func TestSaveAndLoadGameRoundtrip(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()
	active := puzzle.Puzzle{Solution: "APPLE", Index: 2}

	g := game.New(c, active)
	for _, r := range "berry" {
		g.AppendChar(r)
	}
	if _, err := g.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.SaveGame(ctx, g); err != nil {
		t.Fatalf("save game: %v", err)
	}

	loaded := s.LoadGame(ctx, c, active)
	got := loaded.Guesses()
	if len(got) != 1 || got[0] != "BERRY" {
		t.Fatalf("unexpected loaded guesses: %v", got)
	}
	if loaded.OutcomeReported() {
		t.Fatalf("active game must not be marked reported")
	}
}

func TestLoadGameDiscardsStaleState(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()

	g := game.New(c, puzzle.Puzzle{Solution: "APPLE", Index: 0})
	for _, r := range "berry" {
		g.AppendChar(r)
	}
	if _, err := g.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.SaveGame(ctx, g); err != nil {
		t.Fatalf("save game: %v", err)
	}

	next := puzzle.Puzzle{Solution: "BERRY", Index: 1}
	loaded := s.LoadGame(ctx, c, next)
	if len(loaded.Guesses()) != 0 {
		t.Fatalf("stale guesses survived reconciliation: %v", loaded.Guesses())
	}
	if loaded.Puzzle() != next {
		t.Fatalf("reconciled game tagged with wrong puzzle: %+v", loaded.Puzzle())
	}
}

func TestLoadGameCorruptRecordFallsBack(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()

	if err := s.setRecord(ctx, recordGameState, "{not json"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}
	active := puzzle.Puzzle{Solution: "APPLE", Index: 0}
	loaded := s.LoadGame(ctx, c, active)
	if len(loaded.Guesses()) != 0 {
		t.Fatalf("corrupt record produced guesses: %v", loaded.Guesses())
	}
}

func TestLoadGameRejectsInvalidGuesses(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()
	active := puzzle.Puzzle{Solution: "APPLE", Index: 0}

	// Parseable records whose guess list cannot have come from this corpus.
	records := []string{
		`{"puzzleIndex":0,"solution":"APPLE","guesses":["ABCDEFG"],"outcomeReported":false}`,
		`{"puzzleIndex":0,"solution":"APPLE","guesses":["AB"],"outcomeReported":false}`,
		`{"puzzleIndex":0,"solution":"APPLE","guesses":["BERRY","ZZZZZ"],"outcomeReported":false}`,
	}
	for _, raw := range records {
		if err := s.setRecord(ctx, recordGameState, raw); err != nil {
			t.Fatalf("seed record: %v", err)
		}
		loaded := s.LoadGame(ctx, c, active)
		if len(loaded.Guesses()) != 0 {
			t.Fatalf("invalid guesses survived reload for %s: %v", raw, loaded.Guesses())
		}
		// Status evaluates every committed guess against the solution and
		// must be safe on whatever LoadGame returned.
		if got := loaded.Status(); got != game.StatusActive {
			t.Fatalf("expected fresh active game, got status %v", got)
		}
	}
}

func TestReportedFlagSurvivesReload(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()
	active := puzzle.Puzzle{Solution: "APPLE", Index: 0}

	g := game.New(c, active)
	for _, r := range "apple" {
		g.AppendChar(r)
	}
	out, err := g.Submit()
	if err != nil || out == nil {
		t.Fatalf("expected win outcome, got %+v err %v", out, err)
	}
	if err := s.SaveGame(ctx, g); err != nil {
		t.Fatalf("save game: %v", err)
	}

	loaded := s.LoadGame(ctx, c, active)
	if !loaded.OutcomeReported() {
		t.Fatalf("reported flag lost across reload")
	}
	if loaded.Status() != game.StatusWon {
		t.Fatalf("expected won status after reload, got %v", loaded.Status())
	}
}

func TestSaveOutcomePersistsEverythingTogether(t *testing.T) {
	s := openTestStore(t)
	c := testCorpus(t)
	ctx := context.Background()
	active := puzzle.Puzzle{Solution: "APPLE", Index: 4}

	g := game.New(c, active)
	for _, r := range "apple" {
		g.AppendChar(r)
	}
	out, err := g.Submit()
	if err != nil || out == nil {
		t.Fatalf("expected win outcome, got %+v err %v", out, err)
	}
	gs := stats.Record(stats.GameStats{}, *out)
	record := stats.GameRecord{PuzzleIndex: 4, Guesses: 1, Won: true, CompletedAt: time.Unix(1700000000, 0).UTC()}

	if err := s.SaveOutcome(ctx, g, gs, record); err != nil {
		t.Fatalf("save outcome: %v", err)
	}

	if got := s.LoadStats(ctx); got != gs {
		t.Fatalf("stats mismatch after outcome save: %+v", got)
	}
	loaded := s.LoadGame(ctx, c, active)
	if !loaded.OutcomeReported() {
		t.Fatalf("reported flag not persisted with the outcome")
	}
	recent, err := s.RecentGames(ctx, 1)
	if err != nil {
		t.Fatalf("recent games: %v", err)
	}
	if len(recent) != 1 || !recent[0].Won || recent[0].PuzzleIndex != 4 {
		t.Fatalf("unexpected history after outcome save: %+v", recent)
	}
}

func TestStatsRoundtripAndDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if got := s.LoadStats(ctx); got != (stats.GameStats{}) {
		t.Fatalf("expected zero defaults, got %+v", got)
	}

	gs := stats.GameStats{TotalGames: 3, GamesFailed: 1, CurrentStreak: 2, BestStreak: 2, WinDistribution: [6]int{0, 1, 1, 0, 0, 0}, SuccessRate: 67}
	if err := s.SaveStats(ctx, gs); err != nil {
		t.Fatalf("save stats: %v", err)
	}
	if got := s.LoadStats(ctx); got != gs {
		t.Fatalf("stats roundtrip mismatch: %+v", got)
	}

	if err := s.setRecord(ctx, recordGameStats, "###"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}
	if got := s.LoadStats(ctx); got != (stats.GameStats{}) {
		t.Fatalf("corrupt stats did not fall back to defaults: %+v", got)
	}
}

func TestInstallIDStable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := s.InstallID(ctx)
	if first == "" {
		t.Fatalf("expected generated install id")
	}
	if second := s.InstallID(ctx); second != first {
		t.Fatalf("install id changed: %q then %q", first, second)
	}
}

func TestGameHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0).UTC()
	records := []stats.GameRecord{
		{PuzzleIndex: 1, Guesses: 3, Won: true, CompletedAt: base},
		{PuzzleIndex: 2, Guesses: 6, Won: false, CompletedAt: base.Add(time.Hour)},
		{PuzzleIndex: 3, Guesses: 1, Won: true, CompletedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range records {
		if err := s.InsertGameResult(ctx, r); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	recent, err := s.RecentGames(ctx, 2)
	if err != nil {
		t.Fatalf("recent games: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].PuzzleIndex != 3 || recent[1].PuzzleIndex != 2 {
		t.Fatalf("unexpected order: %+v", recent)
	}
	if !recent[0].Won || recent[0].Guesses != 1 {
		t.Fatalf("unexpected newest record: %+v", recent[0])
	}
}
