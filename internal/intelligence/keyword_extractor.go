package intelligence

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// KeywordExtractor reads slots from a message by matching known words. It
// needs no model and is used whenever the LLM is disabled or fails.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

var requestWords = []string{
	"recomenda", "recomienda", "quiero", "busco", "tenes", "sugeri", "suggest", "recommend",
}

var familyContextWords = []string{"en", "con", "mi", "la", "para"}

var seasonWords = []string{"temporada", "temporadas", "season", "seasons"}
var episodeWords = []string{"capitulo", "capitulos", "episodio", "episodios", "episode", "episodes"}

// Extract never fails; a message with no recognizable words comes back as
// IntentOther with empty slots.
func (k *KeywordExtractor) Extract(_ context.Context, req ExtractionRequest) (*Extraction, error) {
	folded := Fold(req.Text)
	words := strings.Split(folded, "_")
	padded := "_" + folded + "_"

	var slots domain.Slots

	if isIndifferentMessage(padded) && req.LastQuestionKey != "" {
		setIndifferent(&slots, req.LastQuestionKey)
		return &Extraction{Intent: domain.IntentAnswer, Slots: slots, Source: SourceKeyword}, nil
	}

	for _, phrase := range slices.Sorted(maps.Keys(restrictionAliases)) {
		if strings.Contains(padded, "_"+phrase+"_") {
			slots.Restrictions = appendUnique(slots.Restrictions, string(restrictionAliases[phrase]))
		}
	}

	for i, w := range words {
		negated := i > 0 && (words[i-1] == "no" || words[i-1] == "sin")
		if negated {
			continue
		}
		if ct, ok := contentTypeAliases[w]; ok && slots.ContentType == "" {
			slots.ContentType = ct
		}
		if g, ok := genreAliases[w]; ok {
			if w == "familia" || w == "familiar" {
				// "en familia" is a viewing context, not a genre request.
				if i > 0 && contains(familyContextWords, words[i-1]) {
					continue
				}
			}
			slots.Genres = appendUnique(slots.Genres, g)
		}
		if r, ok := recencyAliases[w]; ok {
			slots.Recency = r
		}
		if p, ok := popularityAliases[w]; ok {
			slots.Popularity = p
		}
		if t, ok := toneAliases[w]; ok {
			slots.Tone = t
		}
	}
	if strings.Contains(padded, "_ciencia_ficcion_") || strings.Contains(padded, "_sci_fi_") {
		if !strings.Contains(padded, "_no_ciencia_ficcion_") && !strings.Contains(padded, "_no_sci_fi_") {
			slots.Genres = appendUnique(slots.Genres, "ciencia ficcion")
		}
	}
	if strings.Contains(padded, "_poco_conocida_") || strings.Contains(padded, "_joya_oculta_") {
		slots.Popularity = domain.PopularityHiddenGem
	}

	slots.SocialContext = matchSocial(words)
	matchLengthsAndAmounts(&slots, words, req)

	asking := containsAny(words, requestWords)
	intent := domain.IntentOther
	switch {
	case !slots.IsEmpty() && req.LastQuestionKey != "" && !asking:
		intent = domain.IntentAnswer
	case !slots.IsEmpty() || asking:
		intent = domain.IntentRecommendation
	}

	return &Extraction{Intent: intent, Slots: slots, Source: SourceKeyword}, nil
}

func isIndifferentMessage(padded string) bool {
	for _, a := range indifferentAliases {
		if strings.Contains(padded, "_"+a+"_") {
			return true
		}
	}
	return false
}

func setIndifferent(s *domain.Slots, key domain.SlotKey) {
	switch key {
	case domain.KeyContentType:
		s.ContentType = domain.ContentIndifferent
	case domain.KeyGenres:
		s.Genres = []string{domain.Indifferent}
	case domain.KeyMovieDuration:
		s.MovieDuration = domain.LengthIndifferent
	case domain.KeySeasonCount:
		s.SeasonCount = domain.AmountIndifferent
	case domain.KeyTotalEpisodes:
		s.TotalEpisodes = domain.AmountIndifferent
	case domain.KeyEpisodeDuration:
		s.EpisodeDuration = domain.LengthIndifferent
	case domain.KeyRecency:
		s.Recency = domain.RecencyIndifferent
	case domain.KeySocialContext:
		s.SocialContext = domain.SocialIndifferent
	case domain.KeyPopularity:
		s.Popularity = domain.PopularityIndifferent
	}
}

func matchSocial(words []string) domain.SocialContext {
	for i, w := range words {
		switch {
		case w == "novio" || w == "novia" || w == "pareja" || w == "partner":
			return domain.SocialPartner
		case strings.HasPrefix(w, "amig") || w == "friends":
			return domain.SocialFriends
		case w == "familia" || w == "family" || w == "hijos" || w == "chicos":
			if w == "familia" && i > 0 && words[i-1] == "de" {
				// "peli de familia" names the genre
				continue
			}
			return domain.SocialFamily
		case w == "solo" || w == "sola" || w == "solito" || w == "alone":
			return domain.SocialAlone
		}
	}
	return ""
}

// matchLengthsAndAmounts resolves "corta"/"pocas" style words, which are
// shared by several slots, using the nearby noun or the pending question.
func matchLengthsAndAmounts(s *domain.Slots, words []string, req ExtractionRequest) {
	series := req.PriorSlots.ContentType == domain.ContentSeries || s.ContentType == domain.ContentSeries
	for i, w := range words {
		next := ""
		if i+1 < len(words) {
			next = words[i+1]
		}
		prev := ""
		if i > 0 {
			prev = words[i-1]
		}

		if l, ok := lengthAliases[w]; ok {
			switch {
			case contains(episodeWords, next) || contains(episodeWords, prev):
				s.EpisodeDuration = l
			case req.LastQuestionKey == domain.KeyEpisodeDuration:
				s.EpisodeDuration = l
			case req.LastQuestionKey == domain.KeyMovieDuration || !series:
				s.MovieDuration = l
			default:
				s.EpisodeDuration = l
			}
		}

		if a, ok := amountAliases[w]; ok {
			switch {
			case contains(seasonWords, next):
				s.SeasonCount = a
			case contains(episodeWords, next):
				s.TotalEpisodes = a
			case req.LastQuestionKey == domain.KeyTotalEpisodes:
				s.TotalEpisodes = a
			case req.LastQuestionKey == domain.KeySeasonCount:
				s.SeasonCount = a
			}
		}
	}
}

func contains(list []string, w string) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}

func containsAny(words, list []string) bool {
	for _, w := range words {
		for _, l := range list {
			if strings.HasPrefix(w, l) {
				return true
			}
		}
	}
	return false
}
