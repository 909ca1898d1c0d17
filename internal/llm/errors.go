package llm

import "errors"

// Callers branch on these with errors.Is; the wrapped cause carries detail.
var (
	ErrOllamaUnavailable = errors.New("ollama unavailable")
	ErrTimeout           = errors.New("llm call timed out")
	ErrInvalidOutput     = errors.New("llm output is not the expected json")
	ErrRetryExhausted    = errors.New("llm call failed after retries")
)

// errClientStatus marks a 4xx: the same body would be refused again.
var errClientStatus = errors.New("ollama rejected the request")
