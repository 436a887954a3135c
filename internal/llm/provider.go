// Package llm provides the chat providers used to pull recipes out of
// arbitrary web pages.
package llm

import (
	"context"
	"fmt"

	"github.com/asteroid-belt/dishdeck/internal/config"
)

// Provider sends a conversation to a model and returns its reply.
type Provider interface {
	// ChatSync sends messages and waits for the complete response.
	ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error)

	// Name returns the provider name ("anthropic" or "openai").
	Name() string

	// DefaultModel returns the default model for this provider.
	DefaultModel() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // Message content
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0-1)
}

// Response represents a complete chat response.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ProviderType represents supported LLM providers.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
)

// NewProvider creates a provider based on configuration, auto-detecting
// it from the available API keys when none is named.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	providerName := cfg.DefaultProvider
	if providerName == "" {
		providerName = detectProvider(cfg)
	}
	if providerName == "" {
		return nil, fmt.Errorf("no LLM provider configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY")
	}

	switch ProviderType(providerName) {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		p, err := NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.DefaultModel)
		if err != nil {
			return nil, err
		}
		return p, nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		p, err := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.DefaultModel)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: anthropic, openai)", providerName)
	}
}

// Priority: Anthropic > OpenAI
func detectProvider(cfg config.LLMConfig) string {
	if cfg.AnthropicAPIKey != "" {
		return string(ProviderAnthropic)
	}
	if cfg.OpenAIAPIKey != "" {
		return string(ProviderOpenAI)
	}
	return ""
}

// IsConfigured returns true if any LLM provider is configured.
func IsConfigured(cfg config.LLMConfig) bool {
	return cfg.AnthropicAPIKey != "" || cfg.OpenAIAPIKey != ""
}
