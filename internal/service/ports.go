package service

import (
	"context"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/intelligence"
)

// SlotExtractor reads intent and slot values out of one user message.
type SlotExtractor interface {
	Extract(ctx context.Context, req intelligence.ExtractionRequest) (*intelligence.Extraction, error)
}

var (
	_ SlotExtractor = (*intelligence.LLMSlotExtractor)(nil)
	_ SlotExtractor = (*intelligence.KeywordExtractor)(nil)
)

// Catalog fetches raw candidates for one content type.
type Catalog interface {
	FetchCandidates(ctx context.Context, q domain.FetchQuery) ([]domain.Candidate, error)
	FormatLabel() string
}

// Enricher is optionally implemented by a Catalog to add details to the
// few candidates that are actually shown.
type Enricher interface {
	Enrich(ctx context.Context, c domain.Candidate) (domain.Candidate, error)
}

// TurnRecorder persists conversation history. Failures never abort a turn.
type TurnRecorder interface {
	RecordTurn(ctx context.Context, turn domain.Turn) error
}

// HistoryReader lists persisted turns, newest first.
type HistoryReader interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Turn, error)
}
