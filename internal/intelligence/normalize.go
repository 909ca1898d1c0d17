package intelligence

import (
	"strings"
	"unicode"

	"github.com/alexanderramin/moodflix/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases, strips accents and punctuation and joins words with
// underscores so that "Clásico", "clasico" and " CLASICO! " compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, out)
	return strings.Join(strings.Fields(out), "_")
}

var indifferentAliases = []string{
	"indifferent", "indiferente", "me_da_igual", "da_igual", "cualquiera",
	"no_se", "nose", "lo_mismo", "me_da_lo_mismo", "any", "whatever",
	"sin_preferencia", "no_tengo_preferencia", "como_quieras",
}

var contentTypeAliases = map[string]domain.ContentType{
	"movie": domain.ContentMovie, "film": domain.ContentMovie, "pelicula": domain.ContentMovie,
	"peli": domain.ContentMovie, "peliculas": domain.ContentMovie,
	"series": domain.ContentSeries, "serie": domain.ContentSeries, "tv": domain.ContentSeries,
	"show": domain.ContentSeries, "tv_show": domain.ContentSeries,
}

var toneAliases = map[string]domain.Tone{
	"light": domain.ToneLight, "liviano": domain.ToneLight, "liviana": domain.ToneLight,
	"intense": domain.ToneIntense, "intenso": domain.ToneIntense, "intensa": domain.ToneIntense,
	"emotional": domain.ToneEmotional, "emocional": domain.ToneEmotional, "emotiva": domain.ToneEmotional,
}

var recencyAliases = map[string]domain.Recency{
	"new": domain.RecencyNew, "nuevo": domain.RecencyNew, "nueva": domain.RecencyNew,
	"reciente": domain.RecencyNew, "moderno": domain.RecencyNew, "actual": domain.RecencyNew,
	"classic": domain.RecencyClassic, "clasico": domain.RecencyClassic, "clasica": domain.RecencyClassic,
	"viejo": domain.RecencyClassic, "antiguo": domain.RecencyClassic,
}

var lengthAliases = map[string]domain.Length{
	"short": domain.LengthShort, "corta": domain.LengthShort, "corto": domain.LengthShort,
	"cortos": domain.LengthShort, "cortita": domain.LengthShort, "cortitos": domain.LengthShort,
	"long": domain.LengthLong, "larga": domain.LengthLong, "largo": domain.LengthLong,
	"largos": domain.LengthLong, "larguita": domain.LengthLong,
}

var amountAliases = map[string]domain.Amount{
	"few": domain.AmountFew, "pocas": domain.AmountFew, "pocos": domain.AmountFew, "poquitas": domain.AmountFew,
	"many": domain.AmountMany, "varias": domain.AmountMany, "muchas": domain.AmountMany,
	"muchos": domain.AmountMany, "varios": domain.AmountMany,
}

var socialAliases = map[string]domain.SocialContext{
	"alone": domain.SocialAlone, "solo": domain.SocialAlone, "sola": domain.SocialAlone, "solito": domain.SocialAlone,
	"partner": domain.SocialPartner, "pareja": domain.SocialPartner, "con_pareja": domain.SocialPartner,
	"friends": domain.SocialFriends, "amigxs": domain.SocialFriends, "amigos": domain.SocialFriends,
	"amigas": domain.SocialFriends, "con_amigos": domain.SocialFriends, "con_amigxs": domain.SocialFriends,
	"family": domain.SocialFamily, "familia": domain.SocialFamily, "en_familia": domain.SocialFamily,
	"familiar": domain.SocialFamily,
}

var popularityAliases = map[string]domain.Popularity{
	"well_known": domain.PopularityWellKnown, "conocida": domain.PopularityWellKnown,
	"conocido": domain.PopularityWellKnown, "popular": domain.PopularityWellKnown,
	"famosa": domain.PopularityWellKnown, "muy_conocida": domain.PopularityWellKnown,
	"hidden_gem": domain.PopularityHiddenGem, "joyita": domain.PopularityHiddenGem,
	"joya_oculta": domain.PopularityHiddenGem, "poco_conocida": domain.PopularityHiddenGem,
	"desconocida": domain.PopularityHiddenGem,
}

var restrictionAliases = map[string]domain.Restriction{
	"no_gore": domain.NoGore, "sin_gore": domain.NoGore, "no_violencia": domain.NoGore, "no_sangre": domain.NoGore,
	"no_horror": domain.NoHorror, "no_terror": domain.NoHorror, "sin_terror": domain.NoHorror, "no_sustos": domain.NoHorror,
	"no_romance": domain.NoRomance, "sin_romance": domain.NoRomance, "no_romantica": domain.NoRomance,
	"no_scifi": domain.NoSciFi, "no_sci_fi": domain.NoSciFi, "no_ciencia_ficcion": domain.NoSciFi,
	"no_fantasia": domain.NoSciFi,
	"no_crime": domain.NoCrime, "no_crimen": domain.NoCrime, "no_policiales": domain.NoCrime,
	"no_war": domain.NoWar, "no_guerra": domain.NoWar, "no_belicas": domain.NoWar,
	"no_animation": domain.NoAnimation, "no_animacion": domain.NoAnimation, "no_animada": domain.NoAnimation,
	"no_dibujitos": domain.NoAnimation,
}

// genreAliases canonicalizes genre names onto the unaccented Spanish names
// the catalog understands. Unknown genres pass through folded.
var genreAliases = map[string]string{
	"action": "accion", "accion": "accion",
	"adventure": "aventura", "aventura": "aventura", "aventuras": "aventura",
	"animation": "animacion", "animacion": "animacion", "animada": "animacion", "dibujitos": "animacion",
	"comedy": "comedia", "comedia": "comedia", "comedias": "comedia",
	"crime": "crimen", "crimen": "crimen", "policial": "crimen", "policiales": "crimen",
	"documentary": "documental", "documental": "documental",
	"drama": "drama", "dramas": "drama",
	"family": "familia", "familia": "familia", "familiar": "familia",
	"fantasy": "fantasia", "fantasia": "fantasia",
	"horror": "terror", "terror": "terror", "miedo": "terror",
	"mystery": "misterio", "misterio": "misterio",
	"romance": "romance", "romantica": "romance", "romanticas": "romance",
	"science_fiction": "ciencia ficcion", "sci_fi": "ciencia ficcion", "scifi": "ciencia ficcion",
	"ciencia_ficcion": "ciencia ficcion",
	"thriller": "thriller", "suspenso": "thriller",
	"war": "guerra", "guerra": "guerra", "belica": "guerra",
}

func isIndifferent(folded string) bool {
	for _, a := range indifferentAliases {
		if folded == a {
			return true
		}
	}
	return false
}

// normalizeEnum maps a free-form value onto T. Unknown values yield the zero
// value, so they never satisfy a sequencer gate.
func normalizeEnum[T ~string](raw string, aliases map[string]T) T {
	f := Fold(raw)
	if f == "" || f == "null" {
		return ""
	}
	if isIndifferent(f) {
		return T(domain.Indifferent)
	}
	return aliases[f]
}

// A list mixing concrete values with "me da igual" keeps the concrete ones.
func normalizeGenres(raw []string) []string {
	var out []string
	indifferent := false
	for _, g := range raw {
		f := Fold(g)
		if f == "" {
			continue
		}
		if isIndifferent(f) {
			indifferent = true
			continue
		}
		name, ok := genreAliases[f]
		if !ok {
			name = strings.ReplaceAll(f, "_", " ")
		}
		out = appendUnique(out, name)
	}
	if len(out) == 0 && indifferent {
		return []string{domain.Indifferent}
	}
	return out
}

func normalizeRestrictions(raw []string) []string {
	var out []string
	indifferent := false
	for _, r := range raw {
		f := Fold(r)
		if f == "" {
			continue
		}
		if isIndifferent(f) {
			indifferent = true
			continue
		}
		if canonical, ok := restrictionAliases[f]; ok {
			out = appendUnique(out, string(canonical))
		}
	}
	if len(out) == 0 && indifferent {
		return []string{domain.Indifferent}
	}
	return out
}

func normalizeFreeList(raw []string) []string {
	var out []string
	for _, v := range raw {
		f := Fold(v)
		if f == "" || isIndifferent(f) {
			continue
		}
		out = appendUnique(out, f)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// normalizeSlots converts model output into domain slots, dropping any
// value that does not map onto a legal enum.
func normalizeSlots(raw rawSlots) domain.Slots {
	return domain.Slots{
		ContentType:     normalizeEnum(raw.ContentType, contentTypeAliases),
		Genres:          normalizeGenres(raw.Genres),
		Tone:            normalizeEnum(raw.Tone, toneAliases),
		Recency:         normalizeEnum(raw.Recency, recencyAliases),
		MovieDuration:   normalizeEnum(raw.MovieDuration, lengthAliases),
		SeasonCount:     normalizeEnum(raw.SeasonCount, amountAliases),
		TotalEpisodes:   normalizeEnum(raw.TotalEpisodes, amountAliases),
		EpisodeDuration: normalizeEnum(raw.EpisodeDuration, lengthAliases),
		SocialContext:   normalizeEnum(raw.SocialContext, socialAliases),
		Popularity:      normalizeEnum(raw.Popularity, popularityAliases),
		Restrictions:    normalizeRestrictions(raw.Restrictions),
		Themes:          normalizeFreeList(raw.Themes),
		PeopleLike:      normalizeFreeList(raw.PeopleLike),
		PeopleDislike:   normalizeFreeList(raw.PeopleDislike),
		MaxResults:      domain.ClampInt(raw.MaxResults, 0, 5),
	}
}

func normalizeIntent(raw string) domain.Intent {
	switch Fold(raw) {
	case "recommendation", "recomendacion", "recommend":
		return domain.IntentRecommendation
	case "answer", "respuesta":
		return domain.IntentAnswer
	default:
		return domain.IntentOther
	}
}
