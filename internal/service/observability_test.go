package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogTurnObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogTurnObserver(slog.New(slog.NewTextHandler(&buf, nil)), time.Second)
	ctx := context.Background()

	obs.ObserveTurn(ctx, TurnEvent{
		UserID:    "u1",
		Intent:    domain.IntentRecommendation,
		ReplyKind: ReplyQuestion,
		Page:      1,
		Duration:  42 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="chat turn"`)
	assert.Contains(t, out, "duration_ms=42")
	assert.Contains(t, out, "reply_kind=question")
	assert.Contains(t, out, "intent=recommendation")

	buf.Reset()
	obs.ObserveTurn(ctx, TurnEvent{UserID: "u1", ReplyKind: ReplyRecommendation, Duration: 2 * time.Second})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "slow chat turn")

	buf.Reset()
	obs.ObserveTurn(ctx, TurnEvent{UserID: "u1", Err: errors.New("session busy")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="session busy"`)
	assert.NotContains(t, buf.String(), "reply_kind")
}

func TestNewLogTurnObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopTurnObserver{}, NewLogTurnObserver(nil, 0))
}
