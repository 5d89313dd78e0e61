package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	barChar             = "█"
)

// RenderReport prints the statistics summary, the win distribution as a bar
// chart scaled to the terminal width, and the most recent completed games.
func RenderReport(w io.Writer, s GameStats, recent []GameRecord) error {
	if s.TotalGames == 0 {
		_, err := fmt.Fprintln(w, "No completed games yet.")
		return err
	}

	summary := [][]string{
		{"Played", fmt.Sprintf("%d", s.TotalGames)},
		{"Win rate", fmt.Sprintf("%d%%", s.SuccessRate)},
		{"Current streak", fmt.Sprintf("%d", s.CurrentStreak)},
		{"Best streak", fmt.Sprintf("%d", s.BestStreak)},
	}
	for _, row := range summary {
		if _, err := fmt.Fprintf(w, "%s %s\n", padCell(row[0], 14, false), row[1]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nGuess distribution"); err != nil {
		return err
	}
	if err := renderDistribution(w, s.WinDistribution); err != nil {
		return err
	}

	if len(recent) > 0 {
		if _, err := fmt.Fprintln(w, "\nRecent games"); err != nil {
			return err
		}
		if err := renderRecent(w, recent); err != nil {
			return err
		}
	}
	return nil
}

func renderDistribution(w io.Writer, dist [6]int) error {
	maxCount := 0
	for _, n := range dist {
		if n > maxCount {
			maxCount = n
		}
	}
	barWidth := terminalWidth() - 12
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for i, n := range dist {
		bar := ""
		if maxCount > 0 && n > 0 {
			cells := n * barWidth / maxCount
			if cells < 1 {
				cells = 1
			}
			bar = strings.Repeat(barChar, cells)
		}
		if _, err := fmt.Fprintf(w, "%d %s %d\n", i+1, padCell(bar, barWidth, false), n); err != nil {
			return err
		}
	}
	return nil
}

func renderRecent(w io.Writer, recent []GameRecord) error {
	headers := []string{"Puzzle", "Result", "When"}
	rows := make([][]string, 0, len(recent))
	for _, r := range recent {
		result := fmt.Sprintf("won %d/6", r.Guesses)
		if !r.Won {
			result = "lost"
		}
		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.PuzzleIndex),
			result,
			r.CompletedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	for _, line := range formatTable(headers, rows, 0) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols ...int) []string {
	aligned := make(map[int]bool, len(rightAlignCols))
	for _, col := range rightAlignCols {
		aligned[col] = true
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, aligned))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, aligned))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlign map[int]bool) string {
	var b strings.Builder
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, width, rightAlign[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := runewidth.StringWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := strings.Repeat(" ", width-valueWidth)
	if rightAlign {
		return padding + value
	}
	return value + padding
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
