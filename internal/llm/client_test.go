package llm

import (
	"context"
	"testing"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// fakeModel returns a fixed ContentResponse and records the messages
// it was called with.
type fakeModel struct {
	response *llms.ContentResponse
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	return f.response, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func TestClient_Generate(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "  Thought: ok  "}},
	}}
	client := NewClientWithModel(model, Options{Model: "test", Temperature: 0.2, MaxTokens: 256})

	out, err := client.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Thought: ok" {
		t.Errorf("expected trimmed content, got %q", out)
	}
	if len(model.messages) != 2 {
		t.Fatalf("expected system + human messages, got %d", len(model.messages))
	}
	if model.messages[0].Role != schema.ChatMessageTypeSystem {
		t.Errorf("first message should be the system prompt")
	}
}

func TestClient_GenerateNoSystemPrompt(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "hi"}},
	}}
	client := NewClientWithModel(model, Options{})

	if _, err := client.Generate(context.Background(), "", "user"); err != nil {
		t.Fatal(err)
	}
	if len(model.messages) != 1 {
		t.Fatalf("expected only the human message, got %d", len(model.messages))
	}
}

func TestClient_EmptyResponseIsAnError(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "   "}},
	}}
	client := NewClientWithModel(model, Options{})

	if _, err := client.Generate(context.Background(), "s", "u"); err == nil {
		t.Error("an empty model reply must surface as an error")
	}

	model.response = &llms.ContentResponse{}
	if _, err := client.Generate(context.Background(), "s", "u"); err == nil {
		t.Error("a reply with no choices must surface as an error")
	}
}
