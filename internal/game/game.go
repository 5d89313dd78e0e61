// Package game owns the guess state machine for a single puzzle.
package game

import (
	"errors"
	"strings"
	"unicode"

	"github.com/verte-zerg/wordtick/internal/corpus"
	"github.com/verte-zerg/wordtick/internal/puzzle"
)

const (
	// MaxGuesses is the number of committed guesses per game.
	MaxGuesses = 6
	// WordLength mirrors the corpus word length.
	WordLength = corpus.WordLength
)

var (
	// ErrIncompleteGuess is returned by Submit when the input is shorter
	// than a full word. The input buffer is preserved.
	ErrIncompleteGuess = errors.New("not enough letters")
	// ErrUnknownWord is returned by Submit when the input is not in the
	// corpus. The input buffer is preserved.
	ErrUnknownWord = errors.New("word not found")
)

// Status is derived from the committed guesses, never stored.
type Status int

const (
	StatusActive Status = iota
	StatusWon
	StatusLost
)

// Outcome is the terminal result of a game, reported by Submit exactly once.
type Outcome struct {
	Won     bool
	Guesses int // committed guesses when the game ended, 1..6
}

// Game tracks the in-progress input buffer and the committed guess list for
// one puzzle. Won and Lost are absorbing: append, delete, and submit are all
// no-ops once the game has ended.
type Game struct {
	corpus    *corpus.Corpus
	puzzle    puzzle.Puzzle
	input     []rune
	committed []string
	reported  bool
}

// New starts an empty game for the given puzzle.
func New(c *corpus.Corpus, p puzzle.Puzzle) *Game {
	return &Game{corpus: c, puzzle: p}
}

// Restore rebuilds a game from persisted state. The reported flag carries
// whether the terminal outcome was already folded into the statistics, so a
// reloaded finished game cannot double-count.
func Restore(c *corpus.Corpus, p puzzle.Puzzle, guesses []string, reported bool) *Game {
	g := &Game{corpus: c, puzzle: p, reported: reported}
	for _, guess := range guesses {
		if len(g.committed) == MaxGuesses {
			break
		}
		g.committed = append(g.committed, strings.ToUpper(guess))
	}
	return g
}

// Puzzle returns the puzzle this game is played against.
func (g *Game) Puzzle() puzzle.Puzzle {
	return g.puzzle
}

// Status derives the game state from the committed guesses.
func (g *Game) Status() Status {
	if n := len(g.committed); n > 0 && AllCorrect(Evaluate(g.committed[n-1], g.puzzle.Solution)) {
		return StatusWon
	}
	if len(g.committed) == MaxGuesses {
		return StatusLost
	}
	return StatusActive
}

// Input returns the current input buffer.
func (g *Game) Input() string {
	return string(g.input)
}

// Guesses returns the committed guesses in order.
func (g *Game) Guesses() []string {
	out := make([]string, len(g.committed))
	copy(out, g.committed)
	return out
}

// OutcomeReported reports whether Submit already returned the terminal
// outcome for this game.
func (g *Game) OutcomeReported() bool {
	return g.reported
}

// AppendChar adds one letter to the input buffer. No-op when the game has
// ended, the buffer is full, or the rune is not a letter.
func (g *Game) AppendChar(r rune) {
	if g.Status() != StatusActive || len(g.input) == WordLength {
		return
	}
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return
	}
	g.input = append(g.input, r)
}

// DeleteChar removes the last input letter. Gated the same way as AppendChar
// so a finished game is fully read-only.
func (g *Game) DeleteChar() {
	if g.Status() != StatusActive || len(g.input) == 0 {
		return
	}
	g.input = g.input[:len(g.input)-1]
}

// Submit commits the input buffer as a guess. A short input fails with
// ErrIncompleteGuess and an out-of-corpus word with ErrUnknownWord; both
// keep the buffer intact. On the guess that ends the game, the terminal
// Outcome is returned exactly once; every other successful submit returns
// (nil, nil).
func (g *Game) Submit() (*Outcome, error) {
	if len(g.input) != WordLength {
		return nil, ErrIncompleteGuess
	}
	if !g.corpus.IsAccepted(string(g.input)) {
		return nil, ErrUnknownWord
	}
	if g.Status() != StatusActive {
		// Unreachable through the UI, which locks input on game end.
		return nil, nil
	}

	g.committed = append(g.committed, strings.ToUpper(string(g.input)))
	g.input = nil

	if st := g.Status(); st != StatusActive && !g.reported {
		g.reported = true
		return &Outcome{Won: st == StatusWon, Guesses: len(g.committed)}, nil
	}
	return nil, nil
}
