package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordtick/internal/game"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#538D4E")).Padding(0, 1)
	presentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B59F3B")).Padding(0, 1)
	absentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3A3C")).Padding(0, 1)
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Padding(0, 1)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	unusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render(fmt.Sprintf("wordtick #%d", m.game.Puzzle().Index)),
		"",
		m.renderGrid(),
		"",
		m.renderKeyboard(),
		"",
		m.renderStatusLine(),
		m.renderFooter(),
	}
	content := strings.Join(sections, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGrid() string {
	solution := m.game.Puzzle().Solution
	guesses := m.game.Guesses()
	rows := make([]string, 0, game.MaxGuesses)

	for _, guess := range guesses {
		statuses := game.Evaluate(guess, solution)
		cells := make([]string, game.WordLength)
		for i := range cells {
			cells[i] = statusStyle(statuses[i]).Render(string(guess[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if m.game.Status() == game.StatusActive {
		input := m.game.Input()
		cells := make([]string, game.WordLength)
		for i := range cells {
			if i < len(input) {
				cells[i] = inputStyle.Render(string(input[i]))
			} else {
				cells[i] = emptyStyle.Render("_")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	for len(rows) < game.MaxGuesses {
		cells := make([]string, game.WordLength)
		for i := range cells {
			cells[i] = emptyStyle.Render("_")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// renderKeyboard shows the best-known classification of every letter across
// the committed guesses.
func (m *Model) renderKeyboard() string {
	known := keyStatuses(m.game.Guesses(), m.game.Puzzle().Solution)
	lines := make([]string, 0, len(keyboardRows))
	for i, row := range keyboardRows {
		cells := make([]string, 0, len(row))
		for _, r := range row {
			status, ok := known[byte(r)]
			if !ok {
				cells = append(cells, unusedStyle.Render(string(r)))
				continue
			}
			cells = append(cells, statusStyle(status).Render(string(r)))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		lines = append(lines, strings.Repeat(" ", i)+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusLine() string {
	if m.notice != "" {
		if m.noticeKind == noticeError {
			return errorStyle.Render(m.notice)
		}
		return infoStyle.Render(m.notice)
	}
	switch m.game.Status() {
	case game.StatusWon:
		return infoStyle.Render(fmt.Sprintf("Solved in %d/6 (ctrl+s to share)", len(m.game.Guesses())))
	case game.StatusLost:
		return infoStyle.Render("Out of guesses (ctrl+s to share)")
	default:
		return ""
	}
}

func (m *Model) renderFooter() string {
	remaining := m.sched.NextRollover().Sub(m.now)
	if remaining < 0 {
		remaining = 0
	}
	segments := []string{
		fmt.Sprintf("Streak %d", m.stats.CurrentStreak),
		fmt.Sprintf("Win rate %d%%", m.stats.SuccessRate),
		fmt.Sprintf("Next word %s", formatCountdown(remaining)),
		"esc quit",
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}

func formatCountdown(d time.Duration) string {
	total := int(d.Seconds())
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func statusStyle(s game.LetterStatus) lipgloss.Style {
	switch s {
	case game.StatusCorrect:
		return correctStyle
	case game.StatusPresent:
		return presentStyle
	default:
		return absentStyle
	}
}

// keyStatuses folds the evaluations of all committed guesses into the best
// classification seen for each letter (correct beats present beats absent).
func keyStatuses(guesses []string, solution string) map[byte]game.LetterStatus {
	known := map[byte]game.LetterStatus{}
	for _, guess := range guesses {
		statuses := game.Evaluate(guess, solution)
		for i := 0; i < len(guess); i++ {
			letter := guess[i]
			current, seen := known[letter]
			if !seen || statuses[i] > current {
				known[letter] = statuses[i]
			}
		}
	}
	return known
}
