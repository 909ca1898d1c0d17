package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/moodflix/internal/llm"
)

// LLMSlotExtractor turns a user message into an intent plus slot values
// using a language model.
type LLMSlotExtractor struct {
	client   llm.LLMClient
	fallback *KeywordExtractor
	logger   *slog.Logger
}

// NewSlotExtractor creates an extractor backed by an LLM client. When the
// model fails or returns unusable output, fallback is consulted instead; a
// nil fallback surfaces the failure as an *ExtractionError.
func NewSlotExtractor(client llm.LLMClient, fallback *KeywordExtractor, logger *slog.Logger) *LLMSlotExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMSlotExtractor{client: client, fallback: fallback, logger: logger}
}

func (s *LLMSlotExtractor) Extract(ctx context.Context, req ExtractionRequest) (*Extraction, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskExtract,
		System: extractSystemPrompt,
		Prompt: buildExtractUserPrompt(req),
		JSON:   true,
	})
	if err != nil {
		return s.fallbackOr(ctx, req, &ExtractionError{
			Code:    ErrCodeLLMUnavailable,
			Message: fmt.Sprintf("llm extract failed: %v", err),
			Err:     err,
		})
	}

	raw, err := llm.ExtractJSON[rawExtraction](resp.Text, validateRawExtraction)
	if err != nil {
		return s.fallbackOr(ctx, req, &ExtractionError{
			Code:    ErrCodeInvalidOutputFormat,
			Message: fmt.Sprintf("failed to extract slots: %v", err),
			Err:     err,
		})
	}

	return &Extraction{
		Intent: normalizeIntent(raw.Intent),
		Slots:  normalizeSlots(raw.Slots),
		Source: SourceLLM,
	}, nil
}

func (s *LLMSlotExtractor) fallbackOr(ctx context.Context, req ExtractionRequest, cause *ExtractionError) (*Extraction, error) {
	if s.fallback == nil {
		return nil, cause
	}
	level := slog.LevelWarn
	if errors.Is(cause, llm.ErrOllamaUnavailable) {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "slot extraction fell back to keywords", "code", string(cause.Code), "error", cause.Message)
	return s.fallback.Extract(ctx, req)
}
