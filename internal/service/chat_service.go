package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/moodflix/internal/dialogue"
	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/intelligence"
	"github.com/alexanderramin/moodflix/internal/metrics"
	"github.com/alexanderramin/moodflix/internal/ranking"
	"github.com/alexanderramin/moodflix/internal/session"
	"golang.org/x/sync/errgroup"
)

// enrichConcurrency bounds parallel detail lookups for one reply.
const enrichConcurrency = 4

// ErrEmptyUserID is returned when a turn arrives without a user identifier.
var ErrEmptyUserID = errors.New("user id is required")

// ChatService runs the conversation state machine: one call per inbound
// message, serialized per user by the session store.
type ChatService struct {
	store        session.Store
	extractor    SlotExtractor
	catalogs     map[domain.ContentType]Catalog
	recorder     TurnRecorder
	observer     TurnObserver
	logger       *slog.Logger
	defaultCount int
	now          func() time.Time
}

type ChatOption func(*ChatService)

func WithTurnRecorder(r TurnRecorder) ChatOption {
	return func(s *ChatService) { s.recorder = r }
}

func WithTurnObserver(o TurnObserver) ChatOption {
	return func(s *ChatService) { s.observer = o }
}

func WithChatLogger(l *slog.Logger) ChatOption {
	return func(s *ChatService) { s.logger = l }
}

// WithDefaultCount sets how many items a recommendation shows when the
// user did not ask for a number.
func WithDefaultCount(n int) ChatOption {
	return func(s *ChatService) { s.defaultCount = n }
}

func WithChatClock(now func() time.Time) ChatOption {
	return func(s *ChatService) { s.now = now }
}

// NewChatService wires the engine to its collaborators. catalogs must hold
// at least a movie catalog; a missing series catalog makes series requests
// answer with the transient error text.
func NewChatService(store session.Store, extractor SlotExtractor, catalogs map[domain.ContentType]Catalog, opts ...ChatOption) *ChatService {
	s := &ChatService{
		store:        store,
		extractor:    extractor,
		catalogs:     catalogs,
		observer:     NoopTurnObserver{},
		logger:       slog.Default(),
		defaultCount: ranking.MinResults,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMessage processes one user message and returns the bot reply.
// Collaborator failures degrade to a textual reply; an error is returned
// only when the session cannot be acquired.
func (s *ChatService) HandleMessage(ctx context.Context, userID, text string) (reply *Reply, err error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	startedAt := s.now()
	event := TurnEvent{UserID: userID, StartedAt: startedAt}
	defer func() {
		event.Duration = s.now().Sub(startedAt)
		event.Err = err
		if reply != nil {
			event.ReplyKind = reply.Kind
			metrics.RecordChatTurn(string(reply.Kind), event.Duration)
		}
		s.observer.ObserveTurn(ctx, event)
	}()

	sess, release, err := s.store.Acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("acquiring session: %w", err)
	}
	defer release()
	metrics.SetSessionsActive(s.store.Len())

	var parsed domain.Slots
	intent := domain.IntentNone

	switch classify(text) {
	case cmdReset, cmdGreeting:
		sess.Reset()
		reply = textReply(ReplyWelcome, welcomeText)
	case cmdFarewell:
		sess.Reset()
		reply = textReply(ReplyFarewell, farewellText)
	case cmdMore:
		if key := sess.LastQuestionKey; key != "" {
			// A pending question must be answered before paging.
			reply = &Reply{Kind: ReplyQuestion, Text: dialogue.Prompt(key), Question: key}
			break
		}
		if !sess.HasRecommended() {
			reply = textReply(ReplyNoContext, noContextText)
			break
		}
		sess.Page++
		reply = s.recommend(ctx, sess, true)
	default:
		var ext *intelligence.Extraction
		ext, reply = s.processMessage(ctx, sess, text)
		parsed, intent = ext.Slots, ext.Intent
	}

	event.Intent = intent
	event.Page = sess.Page
	s.recordTurn(ctx, domain.Turn{
		UserID:      userID,
		UserMessage: text,
		BotResponse: reply.Text,
		Intent:      intent,
		ReplyKind:   string(reply.Kind),
		Slots:       parsed,
		CreatedAt:   s.now().UTC(),
	})
	return reply, nil
}

// processMessage handles ordinary input: extraction, merge, then either the
// next question or a recommendation.
func (s *ChatService) processMessage(ctx context.Context, sess *domain.Session, text string) (*intelligence.Extraction, *Reply) {
	ext, err := s.extractor.Extract(ctx, intelligence.ExtractionRequest{
		Text:            text,
		LastQuestionKey: sess.LastQuestionKey,
		PriorSlots:      sess.Slots.Clone(),
	})
	if err != nil || ext == nil {
		s.logger.WarnContext(ctx, "slot extraction failed", "user_id", sess.UserID, "error", err)
		ext = &intelligence.Extraction{Intent: domain.IntentOther}
	}

	intent := ext.Intent
	if intent != domain.IntentRecommendation && intent != domain.IntentAnswer {
		intent = domain.IntentOther
	}
	switch {
	case intent == domain.IntentOther && sess.LastQuestionKey != "":
		// Whatever arrives while a question is pending is its answer.
		intent = domain.IntentAnswer
	case intent == domain.IntentOther && !ext.Slots.IsEmpty():
		intent = domain.IntentRecommendation
	case intent == domain.IntentOther:
		if sess.WaitingFor == domain.WaitingStrategy {
			return ext, textReply(ReplyClarification, noResultsText)
		}
		return ext, textReply(ReplyClarification, clarificationText)
	}
	ext.Intent = intent

	if ct := ext.Slots.ContentType; (ct == domain.ContentMovie || ct == domain.ContentSeries) && ct != sess.Slots.ContentType {
		sess.ClearSeen()
		sess.LastRecommendedIDs = nil
	}

	sess.Slots = dialogue.Merge(sess.Slots, ext.Slots)
	sess.LastIntent = intent
	sess.LastQuestionKey = ""
	sess.WaitingFor = domain.WaitingNone
	sess.Page = 1

	if q := dialogue.NextQuestion(sess.Slots); q != nil {
		sess.LastQuestionKey = q.Key
		switch q.Key {
		case domain.KeyContentType:
			sess.WaitingFor = domain.WaitingType
		case domain.KeyGenres:
			sess.WaitingFor = domain.WaitingMood
		}
		return ext, &Reply{Kind: ReplyQuestion, Text: q.Text, Question: q.Key}
	}

	return ext, s.recommend(ctx, sess, false)
}

// recommend fetches, ranks and assembles candidates for the current slots
// and page. An exhausted result clears the seen set and refetches once.
func (s *ChatService) recommend(ctx context.Context, sess *domain.Session, more bool) *Reply {
	ct := sess.Slots.EffectiveContentType()
	cat, ok := s.catalogs[ct]
	if !ok || cat == nil {
		s.logger.ErrorContext(ctx, "no catalog registered", "content_type", string(ct))
		return textReply(ReplyCatalogError, catalogErrorText)
	}

	count := s.defaultCount
	if sess.Slots.MaxResults > 0 {
		count = sess.Slots.MaxResults
	}

	items, outcome, err := s.pick(ctx, cat, ct, sess, count)
	exhausted := false
	// Paging past the catalog's last page also counts as exhausted.
	pastEnd := outcome == ranking.OutcomeNoResults && sess.Page > 1 && len(sess.SeenItemIDs) > 0
	if err == nil && (outcome == ranking.OutcomeExhausted || pastEnd) {
		s.logger.InfoContext(ctx, "recommendations exhausted, starting over", "user_id", sess.UserID, "seen", len(sess.SeenItemIDs))
		sess.ClearSeen()
		exhausted = true
		items, _, err = s.pick(ctx, cat, ct, sess, count)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog fetch failed",
			"user_id", sess.UserID,
			"catalog", cat.FormatLabel(),
			"page", sess.Page,
			"error", err,
		)
		return textReply(ReplyCatalogError, catalogErrorText)
	}
	if len(items) == 0 {
		sess.WaitingFor = domain.WaitingStrategy
		return &Reply{Kind: ReplyNoResults, Text: noResultsText, Exhausted: exhausted}
	}

	items = s.enrich(ctx, cat, items)

	sess.WaitingFor = domain.WaitingNone
	sess.LastRecommendedIDs = sess.LastRecommendedIDs[:0]
	for _, c := range items {
		sess.LastRecommendedIDs = append(sess.LastRecommendedIDs, c.ID)
	}

	return &Reply{
		Kind:      ReplyRecommendation,
		Text:      formatRecommendations(items, ct, more, exhausted),
		Items:     items,
		Exhausted: exhausted,
	}
}

func (s *ChatService) pick(ctx context.Context, cat Catalog, ct domain.ContentType, sess *domain.Session, count int) ([]domain.Candidate, ranking.Outcome, error) {
	raw, err := cat.FetchCandidates(ctx, domain.FetchQuery{
		ContentType: ct,
		Slots:       sess.Slots.Clone(),
		Page:        sess.Page,
	})
	if err != nil {
		return nil, "", err
	}
	ranked := ranking.Candidates(ranking.Rank(raw, sess.Slots))
	items, outcome := ranking.Assemble(ranked, sess, count)
	return items, outcome, nil
}

// enrich adds details to the picked items when the catalog supports it.
// A failed lookup keeps the item as fetched.
func (s *ChatService) enrich(ctx context.Context, cat Catalog, items []domain.Candidate) []domain.Candidate {
	enricher, ok := cat.(Enricher)
	if !ok {
		return items
	}
	out := make([]domain.Candidate, len(items))
	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i, c := range items {
		g.Go(func() error {
			full, err := enricher.Enrich(ctx, c)
			if err != nil {
				s.logger.WarnContext(ctx, "candidate enrichment failed", "id", c.ID, "error", err)
				full = c
			}
			out[i] = full
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *ChatService) recordTurn(ctx context.Context, turn domain.Turn) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordTurn(ctx, turn); err != nil {
		s.logger.WarnContext(ctx, "failed to record turn", "user_id", turn.UserID, "error", err)
	}
}
