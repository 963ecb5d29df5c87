package utils

import (
	"math"
	"math/rand"
	"strings"
)

// ShuffledOrder returns a deterministic permutation of n indices for the
// given seed. The same seed always yields the same permutation, so an
// attempt's question and option order survives re-fetching.
func ShuffledOrder(seed int64, n int) []int {
	r := rand.New(rand.NewSource(seed))
	return r.Perm(n)
}

// QuizScore returns round(100 * correct / total); 0 when the quiz is empty.
func QuizScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// ExactSetMatch reports whether the selected ids are exactly the correct
// ids as sets: duplicates collapse, so a repeated id never substitutes for
// a missing one. Partial credit is never awarded.
func ExactSetMatch(selected, correct []uint) bool {
	correctSet := make(map[uint]bool, len(correct))
	for _, id := range correct {
		correctSet[id] = true
	}

	selectedSet := make(map[uint]bool, len(selected))
	for _, id := range selected {
		if !correctSet[id] {
			return false
		}
		selectedSet[id] = true
	}

	return len(selectedSet) == len(correctSet)
}

// OpenAnswerCorrect reports whether an open-ended response counts as
// correct: content is not evaluated, only non-emptiness after trimming.
func OpenAnswerCorrect(text string) bool {
	return strings.TrimSpace(text) != ""
}
