package ranking

import (
	"sort"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// Rank scores every candidate and orders them by score, highest first.
// Equal scores keep their catalog order; there is no secondary key.
func Rank(candidates []domain.Candidate, slots domain.Slots) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoreCandidate(c, slots)
	}
	CanonicalSort(scored)
	return scored
}

// CanonicalSort orders scored candidates by descending score, stable.
func CanonicalSort(candidates []ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Candidates strips the scores from a ranked list.
func Candidates(ranked []ScoredCandidate) []domain.Candidate {
	out := make([]domain.Candidate, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.Candidate
	}
	return out
}
