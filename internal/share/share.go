// Package share renders and delivers the post-game summary.
package share

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/verte-zerg/wordtick/internal/game"
)

// GameName is the title used in the share header.
const GameName = "wordtick"

const (
	symbolCorrect = "🟩"
	symbolPresent = "🟨"
	symbolAbsent  = "⬜"
)

// Method reports how a summary was delivered.
type Method int

const (
	MethodNone Method = iota
	MethodClipboard
	MethodNativeShare
)

// Deliverer hands the formatted summary to an external destination.
type Deliverer interface {
	Deliver(text string) (Method, error)
}

// FormatShareText renders the completed game as a shareable block: a header
// line with the puzzle index and guess count, then one symbol row per guess.
// Pure function of already-evaluated guesses; it never fails.
func FormatShareText(guesses []string, solution string, index int) string {
	lines := make([]string, 0, len(guesses))
	for _, guess := range guesses {
		var row strings.Builder
		for _, status := range game.Evaluate(guess, solution) {
			switch status {
			case game.StatusCorrect:
				row.WriteString(symbolCorrect)
			case game.StatusPresent:
				row.WriteString(symbolPresent)
			default:
				row.WriteString(symbolAbsent)
			}
		}
		lines = append(lines, row.String())
	}
	return fmt.Sprintf("%s %d %d/6\n\n%s", GameName, index, len(guesses), strings.Join(lines, "\n"))
}

// ClipboardDeliverer copies the summary to the system clipboard.
type ClipboardDeliverer struct{}

// Deliver implements Deliverer.
func (ClipboardDeliverer) Deliver(text string) (Method, error) {
	if err := clipboard.WriteAll(text); err != nil {
		return MethodNone, fmt.Errorf("failed to copy share text: %w", err)
	}
	return MethodClipboard, nil
}
