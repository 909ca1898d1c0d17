package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/google/uuid"
)

var turnCounter atomic.Int64

// TurnOption customizes a turn built by NewTestTurn.
type TurnOption func(*domain.Turn)

func WithTurnTime(at time.Time) TurnOption {
	return func(t *domain.Turn) {
		t.CreatedAt = at
	}
}

func WithTurnSlots(s domain.Slots) TurnOption {
	return func(t *domain.Turn) {
		t.Slots = s
	}
}

func WithReplyKind(kind string) TurnOption {
	return func(t *domain.Turn) {
		t.ReplyKind = kind
	}
}

func WithIntent(i domain.Intent) TurnOption {
	return func(t *domain.Turn) {
		t.Intent = i
	}
}

// NewTestTurn builds a turn for userID. Successive turns get strictly
// increasing timestamps so ordering assertions are stable.
func NewTestTurn(userID, message string, opts ...TurnOption) *domain.Turn {
	n := turnCounter.Add(1)
	t := &domain.Turn{
		ID:          uuid.New().String(),
		UserID:      userID,
		UserMessage: message,
		BotResponse: fmt.Sprintf("respuesta %d", n),
		Intent:      domain.IntentRecommendation,
		ReplyKind:   "recommendation",
		CreatedAt:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Millisecond),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
