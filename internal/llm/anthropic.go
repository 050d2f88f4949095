package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator calls the Anthropic messages API.
type AnthropicGenerator struct {
	messages AnthropicMessager
	cfg      Config
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(cfg Config) AnthropicMessager

func defaultAnthropicCreator(cfg Config) AnthropicMessager {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropic(cfg Config) (*AnthropicGenerator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &AnthropicGenerator{messages: newAnthropicClient(cfg), cfg: cfg}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := anthropic.ModelClaudeSonnet4_20250514
	if g.cfg.Model != "" {
		model = anthropic.Model(g.cfg.Model)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout())
	defer cancel()

	resp, err := g.messages.New(ctx, anthropic.MessageNewParams{
		Model:       model,
		MaxTokens:   int64(g.cfg.maxTokens()),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic generate (%s): %w", classifyTransportError(err), err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
