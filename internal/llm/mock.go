package llm

import (
	"context"
	"strings"
)

// MockClient answers without any network call. It is used when no provider is
// configured.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	q := prompt
	if i := strings.LastIndex(prompt, questionMarker); i >= 0 {
		q = prompt[i+len(questionMarker):]
		if j := strings.Index(q, "\n"); j >= 0 {
			q = q[:j]
		}
	}
	return "(offline mode) I received your question: \"" + strings.TrimSpace(q) + "\". " +
		"Configure an LLM provider to get a real answer. " + Disclaimer, nil
}
