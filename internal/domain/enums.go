package domain

// Indifferent is the sentinel meaning "asked, and the user has no preference".
// It is distinct from the zero value, which means "not asked yet".
const Indifferent = "indifferent"

type ContentType string

const (
	ContentMovie       ContentType = "movie"
	ContentSeries      ContentType = "series"
	ContentIndifferent ContentType = Indifferent
)

type Tone string

const (
	ToneLight       Tone = "light"
	ToneIntense     Tone = "intense"
	ToneEmotional   Tone = "emotional"
	ToneIndifferent Tone = Indifferent
)

type Recency string

const (
	RecencyNew         Recency = "new"
	RecencyClassic     Recency = "classic"
	RecencyIndifferent Recency = Indifferent
)

// Length is shared by the movie-duration and episode-duration slots.
type Length string

const (
	LengthShort       Length = "short"
	LengthLong        Length = "long"
	LengthIndifferent Length = Indifferent
)

// Amount is shared by the season-count and total-episodes slots.
type Amount string

const (
	AmountFew         Amount = "few"
	AmountMany        Amount = "many"
	AmountIndifferent Amount = Indifferent
)

type SocialContext string

const (
	SocialAlone       SocialContext = "alone"
	SocialPartner     SocialContext = "partner"
	SocialFriends     SocialContext = "friends"
	SocialFamily      SocialContext = "family"
	SocialIndifferent SocialContext = Indifferent
)

type Popularity string

const (
	PopularityWellKnown   Popularity = "well_known"
	PopularityHiddenGem   Popularity = "hidden_gem"
	PopularityIndifferent Popularity = Indifferent
)

type Restriction string

const (
	NoGore      Restriction = "no_gore"
	NoHorror    Restriction = "no_horror"
	NoRomance   Restriction = "no_romance"
	NoSciFi     Restriction = "no_scifi"
	NoCrime     Restriction = "no_crime"
	NoWar       Restriction = "no_war"
	NoAnimation Restriction = "no_animation"
)

// ValidRestrictions is the canonical set of accepted restriction strings.
var ValidRestrictions = map[Restriction]bool{
	NoGore: true, NoHorror: true, NoRomance: true, NoSciFi: true,
	NoCrime: true, NoWar: true, NoAnimation: true,
}

var restrictionTags = map[Restriction][]int{
	NoGore:      {GenreHorror},
	NoHorror:    {GenreHorror},
	NoRomance:   {GenreRomance},
	NoSciFi:     {GenreSciFi, GenreFantasy, GenreTVSciFiFantasy},
	NoCrime:     {GenreCrime},
	NoWar:       {GenreWar, GenreTVWarPolitics},
	NoAnimation: {GenreAnimation},
}

// GenreTags returns the catalog genre IDs a restriction excludes, covering
// both the movie and the series genre sets.
func (r Restriction) GenreTags() []int {
	return restrictionTags[r]
}

type Intent string

const (
	IntentNone           Intent = ""
	IntentRecommendation Intent = "recommendation"
	IntentAnswer         Intent = "answer"
	IntentOther          Intent = "other"
)

// WaitingFor tracks a pending clarification that is not a plain slot answer.
type WaitingFor string

const (
	WaitingNone     WaitingFor = ""
	WaitingType     WaitingFor = "type"
	WaitingMood     WaitingFor = "mood"
	WaitingStrategy WaitingFor = "strategy"
)

// SlotKey names a slot targeted by a question.
type SlotKey string

const (
	KeyContentType     SlotKey = "content_type"
	KeyGenres          SlotKey = "genres"
	KeyMovieDuration   SlotKey = "movie_duration"
	KeySeasonCount     SlotKey = "season_count"
	KeyTotalEpisodes   SlotKey = "total_episodes"
	KeyEpisodeDuration SlotKey = "episode_duration"
	KeyRecency         SlotKey = "recency"
	KeySocialContext   SlotKey = "social_context"
	KeyPopularity      SlotKey = "popularity"
)

// TMDB genre identifiers. Movie and TV share most IDs; the TV-only
// composites are listed separately.
const (
	GenreAction      = 28
	GenreAdventure   = 12
	GenreAnimation   = 16
	GenreComedy      = 35
	GenreCrime       = 80
	GenreDocumentary = 99
	GenreDrama       = 18
	GenreFamily      = 10751
	GenreFantasy     = 14
	GenreHorror      = 27
	GenreMystery     = 9648
	GenreRomance     = 10749
	GenreSciFi       = 878
	GenreThriller    = 53
	GenreWar         = 10752

	GenreTVActionAdventure = 10759
	GenreTVKids            = 10762
	GenreTVSciFiFantasy    = 10765
	GenreTVWarPolitics     = 10768
)
