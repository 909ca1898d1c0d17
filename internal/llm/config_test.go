package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, 8*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.Temperature)
	assert.Equal(t, uint32(3), cfg.BreakerFailures)
}

func TestConfig_WithDefaultsFillsGaps(t *testing.T) {
	cfg := Config{Model: "qwen2.5", MaxRetries: -4}.withDefaults()

	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, 8*time.Second, cfg.Timeout)
	assert.Zero(t, cfg.MaxRetries)
	assert.Zero(t, cfg.BreakerFailures, "an explicit zero keeps the breaker off")
}
