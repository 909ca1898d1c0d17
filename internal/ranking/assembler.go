package ranking

import "github.com/alexanderramin/moodflix/internal/domain"

const (
	MinResults = 1
	MaxResults = 5
)

// Outcome tells the caller why an assembled list is empty.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeNoResults Outcome = "no_results" // the catalog returned nothing
	OutcomeExhausted Outcome = "exhausted"  // everything returned was already shown
)

// Assemble drops already-seen candidates, keeps the top maxCount of the
// remaining ranked list and records them as seen on the session.
//
// OutcomeExhausted means the caller should clear the seen set and fetch
// again, once.
func Assemble(ranked []domain.Candidate, sess *domain.Session, maxCount int) ([]domain.Candidate, Outcome) {
	if len(ranked) == 0 {
		return nil, OutcomeNoResults
	}
	maxCount = domain.ClampInt(maxCount, MinResults, MaxResults)

	picked := make([]domain.Candidate, 0, maxCount)
	for _, c := range ranked {
		if sess.HasSeen(c.ID) || containsID(picked, c.ID) {
			continue
		}
		picked = append(picked, c)
		if len(picked) == maxCount {
			break
		}
	}

	if len(picked) == 0 {
		if len(sess.SeenItemIDs) > 0 {
			return nil, OutcomeExhausted
		}
		return nil, OutcomeNoResults
	}

	for _, c := range picked {
		sess.MarkSeen(c.ID)
	}
	return picked, OutcomeOK
}

func containsID(list []domain.Candidate, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}
