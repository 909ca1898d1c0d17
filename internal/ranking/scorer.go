// Package ranking scores catalog candidates against the user's slots and
// assembles the final, deduplicated recommendation set.
package ranking

import "github.com/alexanderramin/moodflix/internal/domain"

// ReasonCode identifies which table produced a score delta.
type ReasonCode string

const (
	ReasonSocialBoost  ReasonCode = "SOCIAL_BOOST"
	ReasonFamilySafety ReasonCode = "FAMILY_SAFETY"
	ReasonRestricted   ReasonCode = "RESTRICTED"
)

// Reason explains one additive contribution to a candidate's score.
type Reason struct {
	Code  ReasonCode
	Tag   int
	Delta int
}

// RestrictionPenalty is subtracted once per active restriction whose genre
// set intersects the candidate. It is larger than the spread between the
// best and worst possible social score, so one restriction always sinks a
// candidate below every unrestricted one.
const RestrictionPenalty = 1000

// socialWeights maps a social context to per-genre deltas. Negative values
// in the family table must outweigh the sum of that table's positive ones.
var socialWeights = map[domain.SocialContext]map[int]int{
	domain.SocialAlone: {
		domain.GenreHorror:   25,
		domain.GenreThriller: 25,
		domain.GenreCrime:    20,
		domain.GenreDrama:    15,
		domain.GenreMystery:  10,
	},
	domain.SocialPartner: {
		domain.GenreRomance: 30,
		domain.GenreComedy:  20,
		domain.GenreDrama:   15,
	},
	domain.SocialFriends: {
		domain.GenreComedy:            30,
		domain.GenreAction:            25,
		domain.GenreTVActionAdventure: 25,
		domain.GenreAdventure:         15,
		domain.GenreFantasy:           15,
		domain.GenreHorror:            10,
	},
	domain.SocialFamily: {
		domain.GenreFamily:    30,
		domain.GenreTVKids:    30,
		domain.GenreAnimation: 25,
		domain.GenreAdventure: 20,
		domain.GenreHorror:    -400,
		domain.GenreThriller:  -150,
	},
}

// ScoredCandidate pairs a candidate with its score and the reasons behind it.
type ScoredCandidate struct {
	Candidate domain.Candidate
	Score     int
	Reasons   []Reason
}

// Score returns the combined social and restriction score of a candidate.
func Score(c domain.Candidate, slots domain.Slots) int {
	return ScoreCandidate(c, slots).Score
}

// ScoreCandidate scores a candidate and records each contributing reason.
func ScoreCandidate(c domain.Candidate, slots domain.Slots) ScoredCandidate {
	result := ScoredCandidate{Candidate: c}
	tags := distinctTags(c.GenreTags)

	factors := []func([]int, domain.Slots) []Reason{
		scoreSocialContext,
		scoreRestrictions,
	}
	for _, f := range factors {
		for _, r := range f(tags, slots) {
			result.Score += r.Delta
			result.Reasons = append(result.Reasons, r)
		}
	}
	return result
}

func scoreSocialContext(tags []int, slots domain.Slots) []Reason {
	table, ok := socialWeights[slots.SocialContext]
	if !ok {
		return nil
	}
	var reasons []Reason
	for _, tag := range tags {
		delta, ok := table[tag]
		if !ok {
			continue
		}
		code := ReasonSocialBoost
		if delta < 0 {
			code = ReasonFamilySafety
		}
		reasons = append(reasons, Reason{Code: code, Tag: tag, Delta: delta})
	}
	return reasons
}

func scoreRestrictions(tags []int, slots domain.Slots) []Reason {
	var reasons []Reason
	for _, r := range slots.ActiveRestrictions() {
		for _, blocked := range r.GenreTags() {
			if containsTag(tags, blocked) {
				reasons = append(reasons, Reason{Code: ReasonRestricted, Tag: blocked, Delta: -RestrictionPenalty})
				break
			}
		}
	}
	return reasons
}

func distinctTags(tags []int) []int {
	seen := make(map[int]bool, len(tags))
	out := make([]int, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func containsTag(tags []int, tag int) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
