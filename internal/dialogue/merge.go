// Package dialogue holds the pure slot-filling rules: how partial answers
// combine across turns and which question to ask next.
package dialogue

import "github.com/alexanderramin/moodflix/internal/domain"

// Merge folds incoming slots into previous ones.
//
// Rules, per slot:
//   - an empty incoming value is ignored, so nothing is erased;
//   - an Indifferent incoming value only lands on an empty or Indifferent slot,
//     so a concrete answer is never downgraded;
//   - any other incoming value overwrites (last concrete answer wins).
//
// Values are not validated here; unknown enum strings pass through.
func Merge(previous, incoming domain.Slots) domain.Slots {
	out := previous.Clone()

	out.ContentType = mergeValue(previous.ContentType, incoming.ContentType)
	out.Tone = mergeValue(previous.Tone, incoming.Tone)
	out.Recency = mergeValue(previous.Recency, incoming.Recency)
	out.MovieDuration = mergeValue(previous.MovieDuration, incoming.MovieDuration)
	out.SeasonCount = mergeValue(previous.SeasonCount, incoming.SeasonCount)
	out.TotalEpisodes = mergeValue(previous.TotalEpisodes, incoming.TotalEpisodes)
	out.EpisodeDuration = mergeValue(previous.EpisodeDuration, incoming.EpisodeDuration)
	out.SocialContext = mergeValue(previous.SocialContext, incoming.SocialContext)
	out.Popularity = mergeValue(previous.Popularity, incoming.Popularity)

	out.Genres = mergeList(out.Genres, incoming.Genres)
	out.Restrictions = mergeList(out.Restrictions, incoming.Restrictions)
	out.Themes = mergeList(out.Themes, incoming.Themes)
	out.PeopleLike = mergeList(out.PeopleLike, incoming.PeopleLike)
	out.PeopleDislike = mergeList(out.PeopleDislike, incoming.PeopleDislike)

	if incoming.MaxResults > 0 {
		out.MaxResults = incoming.MaxResults
	}
	return out
}

func mergeValue[T ~string](prev, in T) T {
	switch {
	case in == "":
		return prev
	case string(in) == domain.Indifferent:
		if prev == "" || string(prev) == domain.Indifferent {
			return in
		}
		return prev
	default:
		return in
	}
}

func mergeList(prev, in []string) []string {
	switch {
	case len(in) == 0:
		return prev
	case domain.IsIndifferentList(in):
		if len(prev) == 0 || domain.IsIndifferentList(prev) {
			return []string{domain.Indifferent}
		}
		return prev
	default:
		out := make([]string, len(in))
		copy(out, in)
		return out
	}
}
