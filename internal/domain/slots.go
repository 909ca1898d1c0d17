package domain

// Slots is the accumulated set of user preferences for one conversation.
// Every field keeps the three-way distinction between unset (zero value),
// Indifferent, and a concrete answer.
type Slots struct {
	ContentType     ContentType   `json:"content_type,omitempty"`
	Genres          []string      `json:"genres,omitempty"`
	Tone            Tone          `json:"tone,omitempty"`
	Recency         Recency       `json:"recency,omitempty"`
	MovieDuration   Length        `json:"movie_duration,omitempty"`
	SeasonCount     Amount        `json:"season_count,omitempty"`
	TotalEpisodes   Amount        `json:"total_episodes,omitempty"`
	EpisodeDuration Length        `json:"episode_duration,omitempty"`
	SocialContext   SocialContext `json:"social_context,omitempty"`
	Popularity      Popularity    `json:"popularity,omitempty"`
	Restrictions    []string      `json:"restrictions,omitempty"`
	Themes          []string      `json:"themes,omitempty"`
	PeopleLike      []string      `json:"people_like,omitempty"`
	PeopleDislike   []string      `json:"people_dislike,omitempty"`
	MaxResults      int           `json:"max_results,omitempty"`
}

// IsEmpty reports whether no slot carries a value.
func (s Slots) IsEmpty() bool {
	return s.ContentType == "" && len(s.Genres) == 0 && s.Tone == "" &&
		s.Recency == "" && s.MovieDuration == "" && s.SeasonCount == "" &&
		s.TotalEpisodes == "" && s.EpisodeDuration == "" && s.SocialContext == "" &&
		s.Popularity == "" && len(s.Restrictions) == 0 && len(s.Themes) == 0 &&
		len(s.PeopleLike) == 0 && len(s.PeopleDislike) == 0 && s.MaxResults == 0
}

// Clone returns a deep copy so list slots never alias between sessions.
func (s Slots) Clone() Slots {
	out := s
	out.Genres = cloneList(s.Genres)
	out.Restrictions = cloneList(s.Restrictions)
	out.Themes = cloneList(s.Themes)
	out.PeopleLike = cloneList(s.PeopleLike)
	out.PeopleDislike = cloneList(s.PeopleDislike)
	return out
}

// EffectiveContentType resolves the catalog to query. Anything other than
// an explicit series answer falls back to movies.
func (s Slots) EffectiveContentType() ContentType {
	if s.ContentType == ContentSeries {
		return ContentSeries
	}
	return ContentMovie
}

// ClampInt bounds v to the closed range [lo, hi].
func ClampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// ActiveRestrictions returns the known restrictions in the slot, in order,
// skipping unknown values and the list sentinel.
func (s Slots) ActiveRestrictions() []Restriction {
	var out []Restriction
	for _, r := range s.Restrictions {
		if ValidRestrictions[Restriction(r)] {
			out = append(out, Restriction(r))
		}
	}
	return out
}

// IsIndifferentList reports whether a list slot holds only the sentinel.
func IsIndifferentList(v []string) bool {
	return len(v) == 1 && v[0] == Indifferent
}

func cloneList(v []string) []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// Legality checks used by the question gates. A malformed value is treated
// exactly like an unset one.

func (c ContentType) Valid() bool {
	return c == ContentMovie || c == ContentSeries || c == ContentIndifferent
}

func (t Tone) Valid() bool {
	return t == ToneLight || t == ToneIntense || t == ToneEmotional || t == ToneIndifferent
}

func (r Recency) Valid() bool {
	return r == RecencyNew || r == RecencyClassic || r == RecencyIndifferent
}

func (l Length) Valid() bool {
	return l == LengthShort || l == LengthLong || l == LengthIndifferent
}

func (a Amount) Valid() bool {
	return a == AmountFew || a == AmountMany || a == AmountIndifferent
}

func (c SocialContext) Valid() bool {
	switch c {
	case SocialAlone, SocialPartner, SocialFriends, SocialFamily, SocialIndifferent:
		return true
	}
	return false
}

func (p Popularity) Valid() bool {
	return p == PopularityWellKnown || p == PopularityHiddenGem || p == PopularityIndifferent
}
