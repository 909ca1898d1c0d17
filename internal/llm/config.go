package llm

import "time"

// TaskType labels a kind of model call in logs and metrics.
type TaskType string

// TaskExtract turns a user message into intent plus slot values.
const TaskExtract TaskType = "extract"

// Config describes how to reach the Ollama server and how hard to try.
type Config struct {
	Endpoint string
	Model    string
	// Timeout bounds each attempt, not the whole call.
	Timeout     time.Duration
	MaxRetries  int
	Temperature float64
	MaxTokens   int
	// BreakerFailures consecutive failed calls open the circuit for
	// BreakerCooldown. Zero disables the breaker.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig targets a local Ollama with deterministic output.
func DefaultConfig() Config {
	return Config{
		Endpoint:        "http://localhost:11434",
		Model:           "llama3.2",
		Timeout:         8 * time.Second,
		MaxRetries:      1,
		Temperature:     0,
		MaxTokens:       512,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
	return c
}
