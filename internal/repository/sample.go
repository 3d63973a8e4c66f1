package repository

import (
	"math/rand"

	"study-toolkit/internal/domain"
)

// SampleQuestions returns a uniformly random permutation of qs truncated to
// min(count, len(qs)). The input slice is never mutated; count <= 0 yields an
// empty list.
func SampleQuestions(qs []domain.Question, count int) []domain.Question {
	if count <= 0 || len(qs) == 0 {
		return []domain.Question{}
	}

	shuffled := make([]domain.Question, len(qs))
	copy(shuffled, qs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}
