// Package corpus holds the word lists the game draws from.
package corpus

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// WordLength is the fixed length of every word in the corpus.
const WordLength = 5

//go:embed data/solutions.txt
var solutionsData string

//go:embed data/accepted.txt
var acceptedData string

// Corpus combines the ordered solution candidates with the larger set of
// words accepted as guesses. Solution candidates are always accepted.
// Immutable after construction.
type Corpus struct {
	solutions []string
	accepted  map[string]struct{}
}

// Load builds the corpus from the embedded word lists.
func Load() (*Corpus, error) {
	solutions, err := parseWords(solutionsData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solution list: %w", err)
	}
	accepted, err := parseWords(acceptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse accepted list: %w", err)
	}
	return New(solutions, accepted)
}

// New builds a corpus from explicit word lists. Every word must be lowercase
// ASCII of length WordLength; the solution order is preserved.
func New(solutions, accepted []string) (*Corpus, error) {
	if len(solutions) == 0 {
		return nil, fmt.Errorf("solution list is empty")
	}
	for _, word := range append(append([]string{}, solutions...), accepted...) {
		if !validWord(word) {
			return nil, fmt.Errorf("invalid corpus word %q", word)
		}
	}
	set := lo.SliceToMap(append(append([]string{}, solutions...), accepted...), func(w string) (string, struct{}) {
		return w, struct{}{}
	})
	return &Corpus{
		solutions: lo.Uniq(solutions),
		accepted:  set,
	}, nil
}

// Solutions returns the ordered solution candidates.
func (c *Corpus) Solutions() []string {
	out := make([]string, len(c.solutions))
	copy(out, c.solutions)
	return out
}

// SolutionCount returns the number of solution candidates.
func (c *Corpus) SolutionCount() int {
	return len(c.solutions)
}

// IsAccepted reports whether a word may be submitted as a guess.
// The check is case-insensitive.
func (c *Corpus) IsAccepted(word string) bool {
	_, ok := c.accepted[strings.ToLower(word)]
	return ok
}

func parseWords(data string) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func validWord(word string) bool {
	if len(word) != WordLength {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}
