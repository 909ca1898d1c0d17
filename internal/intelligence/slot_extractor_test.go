package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient returns a fixed response for testing.
type mockLLMClient struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func TestSlotExtractor_NormalizesModelOutput(t *testing.T) {
	client := &mockLLMClient{response: `{
		"intent": "recommendation",
		"slots": {
			"content_type": "tv",
			"genres": ["Comedia", "ciencia ficción"],
			"recency": "clásico",
			"social_context": "amigxs",
			"popularity": "joyita",
			"restrictions": ["no_terror", "no_crimen", "no_clowns"],
			"max_results": 3
		}
	}`}

	ext := NewSlotExtractor(client, nil, nil)
	got, err := ext.Extract(context.Background(), ExtractionRequest{Text: "una serie de comedia con amigxs"})

	require.NoError(t, err)
	assert.Equal(t, SourceLLM, got.Source)
	assert.Equal(t, domain.IntentRecommendation, got.Intent)
	assert.Equal(t, domain.ContentSeries, got.Slots.ContentType)
	assert.Equal(t, []string{"comedia", "ciencia ficcion"}, got.Slots.Genres)
	assert.Equal(t, domain.RecencyClassic, got.Slots.Recency)
	assert.Equal(t, domain.SocialFriends, got.Slots.SocialContext)
	assert.Equal(t, domain.PopularityHiddenGem, got.Slots.Popularity)
	assert.Equal(t, []string{"no_horror", "no_crime"}, got.Slots.Restrictions)
	assert.Equal(t, 3, got.Slots.MaxResults)
}

func TestSlotExtractor_SendsContextAndJSONMode(t *testing.T) {
	client := &mockLLMClient{response: `{"intent":"answer","slots":{"season_count":"pocas"}}`}

	ext := NewSlotExtractor(client, nil, nil)
	got, err := ext.Extract(context.Background(), ExtractionRequest{
		Text:            "pocas",
		LastQuestionKey: domain.KeySeasonCount,
		PriorSlots:      domain.Slots{ContentType: domain.ContentSeries, Genres: []string{"drama"}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AmountFew, got.Slots.SeasonCount)
	assert.Equal(t, llm.TaskExtract, client.lastReq.Task)
	assert.True(t, client.lastReq.JSON)
	assert.Contains(t, client.lastReq.Prompt, "season_count")
	assert.Contains(t, client.lastReq.Prompt, `"content_type":"series"`)
	assert.True(t, strings.HasSuffix(client.lastReq.Prompt, "Mensaje del usuario: pocas"))
}

func TestSlotExtractor_MalformedEnumsDropped(t *testing.T) {
	client := &mockLLMClient{response: `{"intent":"answer","slots":{"content_type":"documentary","movie_duration":"medium","social_context":"coworkers"}}`}

	got, err := NewSlotExtractor(client, nil, nil).Extract(context.Background(), ExtractionRequest{Text: "x"})

	require.NoError(t, err)
	assert.True(t, got.Slots.IsEmpty())
}

func TestSlotExtractor_FallsBackOnLLMError(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrOllamaUnavailable}

	ext := NewSlotExtractor(client, NewKeywordExtractor(), nil)
	got, err := ext.Extract(context.Background(), ExtractionRequest{Text: "quiero una peli de terror"})

	require.NoError(t, err)
	assert.Equal(t, SourceKeyword, got.Source)
	assert.Equal(t, domain.ContentMovie, got.Slots.ContentType)
	assert.Equal(t, []string{"terror"}, got.Slots.Genres)
}

func TestSlotExtractor_FallsBackOnInvalidOutput(t *testing.T) {
	client := &mockLLMClient{response: "no entendí nada"}

	got, err := NewSlotExtractor(client, NewKeywordExtractor(), nil).
		Extract(context.Background(), ExtractionRequest{Text: "una serie"})

	require.NoError(t, err)
	assert.Equal(t, SourceKeyword, got.Source)
	assert.Equal(t, domain.ContentSeries, got.Slots.ContentType)
}

func TestSlotExtractor_ErrorWithoutFallback(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}

	_, err := NewSlotExtractor(client, nil, nil).Extract(context.Background(), ExtractionRequest{Text: "hola"})

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, ErrCodeLLMUnavailable, extErr.Code)
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestSlotExtractor_MissingIntentIsInvalid(t *testing.T) {
	client := &mockLLMClient{response: `{"slots":{"content_type":"movie"}}`}

	_, err := NewSlotExtractor(client, nil, nil).Extract(context.Background(), ExtractionRequest{Text: "peli"})

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, ErrCodeInvalidOutputFormat, extErr.Code)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}
