package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Generator is the model boundary every stage talks to. The pipeline
// only ever needs one-shot text generation, so tests can script this
// with a canned implementation.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options are the per-call sampling knobs. They are fixed when the
// client is built, not negotiated per request.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client wraps a langchaingo model behind the Generator interface.
type Client struct {
	model llms.Model
	opts  Options
}

// NewClient builds a Client for an OpenAI-compatible hosted endpoint.
// baseURL may point at any compatible host (e.g. Groq); empty means
// the provider default.
func NewClient(apiKey, baseURL string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("model api key is not set")
	}
	llmOpts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(opts.Model),
	}
	if baseURL != "" {
		llmOpts = append(llmOpts, openai.WithBaseURL(baseURL))
	}
	model, err := openai.New(llmOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{model: model, opts: opts}, nil
}

// NewClientWithModel wraps an already-constructed model. Used by tests
// and by callers that build the underlying model themselves.
func NewClientWithModel(model llms.Model, opts Options) *Client {
	return &Client{model: model, opts: opts}
}

// Generate sends one system + user prompt pair and returns the raw
// model text. A transport error or an empty reply is returned as-is:
// no retry, no backoff.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var messages []llms.MessageContent
	if systemPrompt != "" {
		messages = append(messages, llms.MessageContent{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  schema.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
	})

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(c.opts.Temperature),
		llms.WithMaxTokens(c.opts.MaxTokens),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return content, nil
}
