package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comigor/casehelper-go/internal/config"
	"github.com/comigor/casehelper-go/internal/logger"
)

// ErrEmptyCompletion is returned when a provider answers with no text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// New creates the Client selected by cfg.Provider. Without an API key every
// provider falls back to the mock so the assistant stays usable offline.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider != "mock" && provider != "" && cfg.APIKey == "" {
		logger.L.Warn("no API key configured; using mock completions", "provider", cfg.Provider)
		provider = "mock"
	}
	switch provider {
	case "", "mock":
		return NewMockClient(), nil
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "gemini", "google":
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
