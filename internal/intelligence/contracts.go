package intelligence

import "github.com/alexanderramin/moodflix/internal/domain"

// ExtractionRequest is one user message plus the context needed to read
// short answers ("pocas", "me da igual") against the pending question.
type ExtractionRequest struct {
	Text            string
	LastQuestionKey domain.SlotKey
	PriorSlots      domain.Slots
}

// Extraction is the normalized result of reading a user message.
type Extraction struct {
	Intent domain.Intent
	Slots  domain.Slots
	// Source tells whether the model or the keyword matcher produced it.
	Source ExtractionSource
}

type ExtractionSource string

const (
	SourceLLM     ExtractionSource = "llm"
	SourceKeyword ExtractionSource = "keyword"
)

// rawExtraction is the JSON shape the model is asked to produce. Values
// are free-form strings; normalizeSlots maps them onto the domain enums.
type rawExtraction struct {
	Intent string   `json:"intent"`
	Slots  rawSlots `json:"slots"`
}

type rawSlots struct {
	ContentType     string   `json:"content_type"`
	Genres          []string `json:"genres"`
	Tone            string   `json:"tone"`
	Recency         string   `json:"recency"`
	MovieDuration   string   `json:"movie_duration"`
	SeasonCount     string   `json:"season_count"`
	TotalEpisodes   string   `json:"total_episodes"`
	EpisodeDuration string   `json:"episode_duration"`
	SocialContext   string   `json:"social_context"`
	Popularity      string   `json:"popularity"`
	Restrictions    []string `json:"restrictions"`
	Themes          []string `json:"themes"`
	PeopleLike      []string `json:"people_like"`
	PeopleDislike   []string `json:"people_dislike"`
	MaxResults      int      `json:"max_results"`
}

// ExtractionErrorCode enumerates extraction failure reasons.
type ExtractionErrorCode string

const (
	ErrCodeLLMUnavailable      ExtractionErrorCode = "LLM_UNAVAILABLE"
	ErrCodeInvalidOutputFormat ExtractionErrorCode = "INVALID_OUTPUT_FORMAT"
)

// ExtractionError is returned when the model could not be used and no
// fallback extractor is configured.
type ExtractionError struct {
	Code    ExtractionErrorCode `json:"code"`
	Message string              `json:"message"`
	Err     error               `json:"-"`
}

func (e *ExtractionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
