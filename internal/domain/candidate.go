package domain

import "time"

// Candidate is one recommendable item as fetched from a catalog. Values are
// never mutated after fetch; enrichment produces a new Candidate.
type Candidate struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Year             string   `json:"year,omitempty"`
	GenreTags        []int    `json:"genre_tags,omitempty"`
	GenreNames       []string `json:"genres,omitempty"`
	DurationMinutes  *int     `json:"duration_minutes,omitempty"`
	Seasons          *int     `json:"seasons,omitempty"`
	Episodes         *int     `json:"episodes,omitempty"`
	Synopsis         string   `json:"synopsis,omitempty"`
	AvailabilityText string   `json:"availability,omitempty"`
}

// HasTag reports whether the candidate carries the given genre ID.
func (c Candidate) HasTag(tag int) bool {
	for _, t := range c.GenreTags {
		if t == tag {
			return true
		}
	}
	return false
}

// FetchQuery is what the session manager hands to a catalog.
type FetchQuery struct {
	ContentType ContentType
	Slots       Slots
	Page        int
}

// Turn is one persisted exchange of the conversation history.
type Turn struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Intent      Intent    `json:"intent,omitempty"`
	ReplyKind   string    `json:"reply_kind,omitempty"`
	Slots       Slots     `json:"slots"`
	CreatedAt   time.Time `json:"created_at"`
}
