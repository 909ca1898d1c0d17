package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "ollama"

type GenerateRequest struct {
	Task   TaskType
	System string
	Prompt string
	// JSON asks Ollama to constrain the reply to a JSON object.
	JSON bool
}

type GenerateResponse struct {
	Text    string
	Model   string
	Latency time.Duration
}

// LLMClient is the narrow surface the slot extractor needs.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Available(ctx context.Context) bool
}

// Message is one entry of an Ollama chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Format   string      `json:"format,omitempty"`
	Stream   bool        `json:"stream"`
	Options  chatOptions `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// OllamaClient calls POST /api/chat without streaming. Each call retries up
// to MaxRetries times; repeated failed calls open a circuit so turns fall
// back to keywords without waiting on a dead server.
type OllamaClient struct {
	cfg      Config
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[*chatResponse]
	observer Observer
	logger   *slog.Logger
}

func NewOllamaClient(cfg Config, observer Observer, logger *slog.Logger) *OllamaClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &OllamaClient{
		cfg: cfg.withDefaults(),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
				MaxIdleConnsPerHost: 4,
			},
		},
		observer: observer,
		logger:   logger,
	}
	if c.cfg.BreakerFailures > 0 {
		trip := c.cfg.BreakerFailures
		c.cb = gobreaker.NewCircuitBreaker[*chatResponse](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     c.cfg.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= trip
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errClientStatus) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("circuit breaker state transition", "breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return c
}

func (c *OllamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	resp, err := c.execute(ctx, c.chatBody(req))
	elapsed := time.Since(start)

	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: elapsed.Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: resp.Message.Content, Model: resp.Model, Latency: elapsed}, nil
}

func (c *OllamaClient) chatBody(req GenerateRequest) chatRequest {
	body := chatRequest{
		Model:   c.cfg.Model,
		Options: chatOptions{Temperature: c.cfg.Temperature, NumPredict: c.cfg.MaxTokens},
	}
	if req.System != "" {
		body.Messages = append(body.Messages, Message{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, Message{Role: "user", Content: req.Prompt})
	if req.JSON {
		body.Format = "json"
	}
	return body
}

func (c *OllamaClient) execute(ctx context.Context, body chatRequest) (*chatResponse, error) {
	if c.cb == nil {
		return c.withRetries(ctx, body)
	}
	resp, err := c.cb.Execute(func() (*chatResponse, error) {
		return c.withRetries(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: circuit open", ErrOllamaUnavailable)
	}
	return resp, err
}

// withRetries gives every attempt the full per-attempt timeout. A rejected
// request or a cancelled caller ends the loop early.
func (c *OllamaClient) withRetries(ctx context.Context, body chatRequest) (*chatResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		resp, err := c.attempt(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || errors.Is(err, errClientStatus) {
			break
		}
	}

	switch {
	case errors.Is(lastErr, ErrTimeout):
		return nil, lastErr
	case isConnectionError(lastErr):
		return nil, fmt.Errorf("%w: %v", ErrOllamaUnavailable, lastErr)
	default:
		return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
	}
}

func (c *OllamaClient) attempt(ctx context.Context, body chatRequest) (*chatResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.post(attemptCtx, body)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, c.cfg.Timeout)
	}
	return resp, err
}

func (c *OllamaClient) post(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: status %d: %s", errClientStatus, resp.StatusCode, snippet)
		}
		return nil, fmt.Errorf("ollama status %d: %s", resp.StatusCode, snippet)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	return &out, nil
}

// Available reports whether GET /api/tags answers within two seconds.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// errorCode is the stable label observers see for a failed call.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, errClientStatus):
		return "REJECTED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

var _ LLMClient = (*OllamaClient)(nil)
