package share

import (
	"strings"
	"testing"
)

func TestFormatShareTextSingleWin(t *testing.T) {
	got := FormatShareText([]string{"APPLE"}, "APPLE", 42)
	want := "wordtick 42 1/6\n\n🟩🟩🟩🟩🟩"
	if got != want {
		t.Fatalf("unexpected share text:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatShareTextMixedRows(t *testing.T) {
	got := FormatShareText([]string{"MOUND", "PLEAT", "APPLE"}, "APPLE", 7)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, blank line, and 3 rows, got %d lines:\n%s", len(lines), got)
	}
	if lines[0] != "wordtick 7 3/6" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "" {
		t.Fatalf("expected blank separator line, got %q", lines[1])
	}
	if lines[2] != "⬜⬜⬜⬜⬜" {
		t.Fatalf("unexpected row for MOUND: %q", lines[2])
	}
	if lines[3] != "🟨🟨🟨🟨⬜" {
		t.Fatalf("unexpected row for PLEAT: %q", lines[3])
	}
	if lines[4] != "🟩🟩🟩🟩🟩" {
		t.Fatalf("unexpected row for APPLE: %q", lines[4])
	}
}

func TestFormatShareTextLoss(t *testing.T) {
	guesses := []string{"MOUND", "MOUND", "MOUND", "MOUND", "MOUND", "MOUND"}
	got := FormatShareText(guesses, "APPLE", 3)
	if !strings.HasPrefix(got, "wordtick 3 6/6\n\n") {
		t.Fatalf("unexpected header: %q", got)
	}
	if strings.Count(got, "⬜") != 30 {
		t.Fatalf("expected 30 absent symbols, got %d", strings.Count(got, "⬜"))
	}
}
