package puzzle

import (
	"testing"
	"time"
)

var testWords = []string{"apple", "berry", "crane"}

func schedulerAt(t0 time.Time, epoch time.Time, period time.Duration) *Scheduler {
	return NewScheduler(testWords, epoch, period, func() time.Time { return t0 })
}

func TestCurrentDeterministicWithinPeriod(t *testing.T) {
	epoch := time.Unix(0, 0)
	first := schedulerAt(epoch.Add(30*time.Second), epoch, time.Minute).Current()
	second := schedulerAt(epoch.Add(59*time.Second), epoch, time.Minute).Current()
	if first != second {
		t.Fatalf("expected identical puzzles within one period, got %+v and %+v", first, second)
	}
	if first.Index != 0 || first.Solution != "APPLE" {
		t.Fatalf("unexpected first puzzle: %+v", first)
	}
}

func TestCurrentAdvancesAcrossPeriods(t *testing.T) {
	epoch := time.Unix(0, 0)
	tests := []struct {
		offset time.Duration
		index  int
	}{
		{0, 0},
		{time.Minute, 1},
		{2 * time.Minute, 2},
		{3 * time.Minute, 0}, // wraps past the corpus length
		{4 * time.Minute, 1},
	}
	for _, tt := range tests {
		got := schedulerAt(epoch.Add(tt.offset), epoch, time.Minute).Current()
		if got.Index != tt.index {
			t.Fatalf("offset %v: expected index %d, got %d", tt.offset, tt.index, got.Index)
		}
	}
}

func TestCurrentBeforeEpochStaysNonNegative(t *testing.T) {
	epoch := time.Unix(1_000_000, 0)
	for _, offset := range []time.Duration{-time.Second, -time.Minute, -90 * time.Second, -24 * time.Hour} {
		got := schedulerAt(epoch.Add(offset), epoch, time.Minute).Current()
		if got.Index < 0 || got.Index >= len(testWords) {
			t.Fatalf("offset %v: index %d out of range", offset, got.Index)
		}
	}
	// One full period before the epoch is the last candidate.
	got := schedulerAt(epoch.Add(-time.Minute), epoch, time.Minute).Current()
	if got.Index != len(testWords)-1 {
		t.Fatalf("expected wrapped index %d, got %d", len(testWords)-1, got.Index)
	}
}

func TestNextRollover(t *testing.T) {
	epoch := time.Unix(0, 0)
	s := schedulerAt(epoch.Add(90*time.Second), epoch, time.Minute)
	want := epoch.Add(2 * time.Minute)
	if got := s.NextRollover(); !got.Equal(want) {
		t.Fatalf("expected rollover at %v, got %v", want, got)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{-4, 2, -2},
		{0, 5, 0},
		{-1, 5, -1},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
