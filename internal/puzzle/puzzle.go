// Package puzzle maps wall-clock time to the active solution word.
package puzzle

import (
	"strings"
	"time"
)

// DefaultEpoch is the instant the first puzzle period started.
var DefaultEpoch = time.UnixMilli(1641013200000)

// DefaultPeriod is how long a single solution stays active.
const DefaultPeriod = 5 * time.Minute

// Puzzle is the active solution and its stable index.
type Puzzle struct {
	Solution string // uppercase canonical form
	Index    int
}

// Scheduler derives the current puzzle from time. Rollover detection is
// pull-based: callers re-read Current instead of waiting on a timer.
type Scheduler struct {
	words  []string
	epoch  time.Time
	period time.Duration
	now    func() time.Time
}

// NewScheduler builds a scheduler over the ordered solution candidates.
// A nil now falls back to time.Now.
func NewScheduler(words []string, epoch time.Time, period time.Duration, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scheduler{
		words:  words,
		epoch:  epoch,
		period: period,
		now:    now,
	}
}

// Current returns the puzzle for the present instant. Two calls within the
// same period return identical results.
func (s *Scheduler) Current() Puzzle {
	idx := s.indexAt(s.now())
	return Puzzle{
		Solution: strings.ToUpper(s.words[idx]),
		Index:    idx,
	}
}

// NextRollover returns when the active puzzle is replaced.
func (s *Scheduler) NextRollover() time.Time {
	step := floorDiv(s.now().Sub(s.epoch).Milliseconds(), s.period.Milliseconds())
	return s.epoch.Add(time.Duration(step+1) * s.period)
}

// Period returns the configured period length.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// indexAt is always in [0, len(words)), even for instants before the epoch.
func (s *Scheduler) indexAt(t time.Time) int {
	step := floorDiv(t.UnixMilli()-s.epoch.UnixMilli(), s.period.Milliseconds())
	n := int64(len(s.words))
	return int(((step % n) + n) % n)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
