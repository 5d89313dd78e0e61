// Package stats maintains the running record of completed games.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/wordtick/internal/game"
)

// GameStats is the persisted record of historical outcomes. The zero value
// is the valid first-run default.
type GameStats struct {
	TotalGames      int    `json:"totalGames"`
	GamesFailed     int    `json:"gamesFailed"`
	CurrentStreak   int    `json:"currentStreak"`
	BestStreak      int    `json:"bestStreak"`
	WinDistribution [6]int `json:"winDistribution"` // indexed by guesses-at-win minus one
	SuccessRate     int    `json:"successRate"`     // derived, 0..100
}

// GameRecord is one completed game in the history table.
type GameRecord struct {
	PuzzleIndex int
	Guesses     int
	Won         bool
	CompletedAt time.Time
}

// Record folds one completed game into the stats and returns the new value.
// The caller must invoke it at most once per game; the state machine's
// edge-triggered outcome enforces that.
func Record(s GameStats, o game.Outcome) GameStats {
	s.TotalGames++
	if o.Won {
		if o.Guesses >= 1 && o.Guesses <= len(s.WinDistribution) {
			s.WinDistribution[o.Guesses-1]++
		}
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.GamesFailed++
		s.CurrentStreak = 0
	}
	s.SuccessRate = successRate(s)
	return s
}

// successRate is the won percentage, rounded half away from zero.
func successRate(s GameStats) int {
	total := s.TotalGames
	if total < 1 {
		total = 1
	}
	return int(math.Round(100 * float64(s.TotalGames-s.GamesFailed) / float64(total)))
}
