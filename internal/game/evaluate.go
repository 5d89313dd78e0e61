package game

import "strings"

// LetterStatus classifies one guessed letter against the solution.
type LetterStatus int

const (
	StatusAbsent LetterStatus = iota
	StatusPresent
	StatusCorrect
)

// Evaluate scores a guess against the solution with the standard two-pass
// algorithm. The first pass marks exact positions; the second hands out
// "present" marks from the solution's unused letter counts, so duplicate
// letters are never over-credited. Comparison is case-insensitive.
func Evaluate(guess, solution string) []LetterStatus {
	guess = strings.ToUpper(guess)
	solution = strings.ToUpper(solution)
	n := len(guess)
	result := make([]LetterStatus, n)

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == solution[i] {
			result[i] = StatusCorrect
		} else if j := letterIndex(solution[i]); j >= 0 {
			counts[j]++
		}
	}
	for i := 0; i < n; i++ {
		if result[i] == StatusCorrect {
			continue
		}
		j := letterIndex(guess[i])
		if j >= 0 && counts[j] > 0 {
			result[i] = StatusPresent
			counts[j]--
		} else {
			result[i] = StatusAbsent
		}
	}
	return result
}

// AllCorrect reports whether every letter was classified as correct.
func AllCorrect(statuses []LetterStatus) bool {
	for _, s := range statuses {
		if s != StatusCorrect {
			return false
		}
	}
	return len(statuses) > 0
}

func letterIndex(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
