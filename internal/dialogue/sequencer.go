package dialogue

import "github.com/alexanderramin/moodflix/internal/domain"

// Question is a single prompt aimed at one slot.
type Question struct {
	Key  domain.SlotKey
	Text string
}

var prompts = map[domain.SlotKey]string{
	domain.KeyContentType:     "¿Qué tenés ganas de ver ahora: **película**, **serie** o te da lo mismo?",
	domain.KeyGenres:          "Bien. ¿De qué onda te pinta?\nPodés decirme uno o varios géneros: comedia, terror, drama, acción, romántica, ciencia ficción, etc.",
	domain.KeyMovieDuration:   "¿Buscás una **peli cortita** o una **larga**?",
	domain.KeySeasonCount:     "¿Pocas temporadas o varias?",
	domain.KeyTotalEpisodes:   "¿Pocos capítulos o muchos?",
	domain.KeyEpisodeDuration: "¿Capítulos cortitos (20-30 min) o largos (40-60 min)?",
	domain.KeyRecency:         "¿Preferís algo **nuevo** o también te va algún **clásico**?",
	domain.KeySocialContext:   "¿Lo vas a ver solo, con pareja, con amigxs o en familia?",
	domain.KeyPopularity:      "¿Algo muy conocido o una joyita poco vista?",
}

// Prompt returns the question text for a slot key.
func Prompt(key domain.SlotKey) string {
	return prompts[key]
}

type gate struct {
	key      domain.SlotKey
	answered func(domain.Slots) bool
}

var (
	headGates = []gate{
		{domain.KeyContentType, func(s domain.Slots) bool { return s.ContentType.Valid() }},
		{domain.KeyGenres, func(s domain.Slots) bool { return hasAnswer(s.Genres) }},
	}
	movieGates = []gate{
		{domain.KeyMovieDuration, func(s domain.Slots) bool { return s.MovieDuration.Valid() }},
	}
	seriesGates = []gate{
		{domain.KeySeasonCount, func(s domain.Slots) bool { return s.SeasonCount.Valid() }},
		{domain.KeyTotalEpisodes, func(s domain.Slots) bool { return s.TotalEpisodes.Valid() }},
		{domain.KeyEpisodeDuration, func(s domain.Slots) bool { return s.EpisodeDuration.Valid() }},
	}
	tailGates = []gate{
		{domain.KeyRecency, func(s domain.Slots) bool { return s.Recency.Valid() }},
		{domain.KeySocialContext, func(s domain.Slots) bool { return s.SocialContext.Valid() }},
		{domain.KeyPopularity, func(s domain.Slots) bool { return s.Popularity.Valid() }},
	}
)

// NextQuestion walks the fixed gate order and returns the first unanswered
// question, or nil when the slots are complete enough to recommend.
// Indifferent satisfies a gate; empty or malformed values do not.
func NextQuestion(slots domain.Slots) *Question {
	for _, gates := range gateOrder(slots) {
		for _, g := range gates {
			if !g.answered(slots) {
				return &Question{Key: g.key, Text: prompts[g.key]}
			}
		}
	}
	return nil
}

// MaxQuestions is the longest possible question run for a content type.
func MaxQuestions(ct domain.ContentType) int {
	n := len(headGates) + len(tailGates)
	if ct == domain.ContentSeries {
		return n + len(seriesGates)
	}
	return n + len(movieGates)
}

func gateOrder(slots domain.Slots) [][]gate {
	// The branch is only known once the content type gate is satisfied; before
	// that the head gates always stop the walk.
	if slots.EffectiveContentType() == domain.ContentSeries {
		return [][]gate{headGates, seriesGates, tailGates}
	}
	return [][]gate{headGates, movieGates, tailGates}
}

func hasAnswer(list []string) bool {
	for _, v := range list {
		if v != "" {
			return true
		}
	}
	return false
}
