package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator calls OpenAI's chat completions API. This is the default
// provider; the service historically ran on gpt-4o-mini.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    Config
}

func NewOpenAI(cfg Config) (*OpenAIGenerator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout())
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: g.cfg.maxTokens(),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate (%s): %w", classifyTransportError(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai generate: empty choice list")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
