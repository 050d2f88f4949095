package llm

import (
	"fmt"
	"strings"

	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
)

// New builds the configured provider behind the evaluation core's Generator
// boundary, with client-side pacing when configured.
func New(cfg Config) (evaluation.Generator, error) {
	var (
		gen evaluation.Generator
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		cfg.Provider = "openai"
		gen, err = NewOpenAI(cfg)
	case "anthropic":
		gen, err = NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q (supported: openai, anthropic)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerMinute > 0 {
		gen = NewRateLimited(gen, cfg.RequestsPerMinute)
	}
	return gen, nil
}
