// Package llm adapts external text-generation providers to the evaluation
// core's Generator boundary. Providers are treated as untrusted and
// unreliable: adapters classify transport failures for reporting but never
// retry — retry policy belongs to a layer above.
package llm

import (
	"fmt"
	"time"
)

// systemPrompt matches the intake evaluation role given to every provider.
const systemPrompt = "You are a medical AI assistant evaluating intake forms. Respond with strict JSON only."

const (
	defaultMaxTokens = 300
	defaultTimeout   = 30 * time.Second
)

type Config struct {
	// Provider name: "openai" or "anthropic".
	Provider string

	// Model overrides the provider's default model.
	Model string

	APIKey string

	// BaseURL points at a custom endpoint (proxies, test servers).
	BaseURL string

	MaxTokens int

	Timeout time.Duration

	// RequestsPerMinute paces calls to the provider's own rate limit.
	// Zero disables pacing.
	RequestsPerMinute int
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s: API key is required", c.Provider)
	}
	return nil
}
