package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Client turns a composed prompt into generated text. It is the only
// operation in the assistant that waits on an external service.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatCompleter is the minimal subset of openai.Client used here; it is easy to mock in tests.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
