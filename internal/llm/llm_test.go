package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/dishdeck/internal/config"
)

type mockAnthropicClient struct {
	response *anthropic.Message
	err      error
	captured anthropic.MessageNewParams
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.captured = params
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type mockOpenAIClient struct {
	response openai.ChatCompletionResponse
	err      error
	captured openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.captured = req
	return m.response, m.err
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LLMConfig
		wantName string
		wantErr  string
	}{
		{"nothing configured", config.LLMConfig{}, "", "no LLM provider configured"},
		{"anthropic detected", config.LLMConfig{AnthropicAPIKey: "a", OpenAIAPIKey: "o"}, "anthropic", ""},
		{"openai detected", config.LLMConfig{OpenAIAPIKey: "o"}, "openai", ""},
		{"explicit openai", config.LLMConfig{AnthropicAPIKey: "a", OpenAIAPIKey: "o", DefaultProvider: "openai"}, "openai", ""},
		{"explicit without key", config.LLMConfig{DefaultProvider: "anthropic"}, "", "ANTHROPIC_API_KEY not set"},
		{"unknown", config.LLMConfig{DefaultProvider: "mystery", OpenAIAPIKey: "o"}, "", "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, IsConfigured(config.LLMConfig{}))
	assert.True(t, IsConfigured(config.LLMConfig{OpenAIAPIKey: "x"}))
}

func TestConvertToAnthropicMessages(t *testing.T) {
	msgs, system := convertToAnthropicMessages([]Message{
		NewSystemMessage("You extract recipes."),
		NewUserMessage("page text"),
		NewAssistantMessage("{}"),
		NewUserMessage("again"),
	})
	assert.Equal(t, "You extract recipes.", system)
	assert.Len(t, msgs, 3)
}

func TestAnthropicProvider_ChatSync(t *testing.T) {
	mock := &mockAnthropicClient{
		response: &anthropic.Message{
			Model:      "claude-3-5-haiku-20241022",
			StopReason: "end_turn",
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: `{"title":`},
				{Type: "text", Text: `"Soup"}`},
			},
			Usage: anthropic.Usage{InputTokens: 10, OutputTokens: 5},
		},
	}
	p := NewAnthropicProviderWithClient(mock, "")

	resp, err := p.ChatSync(context.Background(), []Message{
		NewSystemMessage("sys"),
		NewUserMessage("hi"),
	}, ChatOptions{})
	require.NoError(t, err)

	assert.Equal(t, `{"title":"Soup"}`, resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, anthropic.Model(DefaultAnthropicModel), mock.captured.Model)
	assert.Equal(t, int64(anthropicDefaultMaxTokens), mock.captured.MaxTokens)
	require.Len(t, mock.captured.System, 1)
	assert.Equal(t, "sys", mock.captured.System[0].Text)
}

func TestAnthropicProvider_ChatSyncError(t *testing.T) {
	p := NewAnthropicProviderWithClient(&mockAnthropicClient{err: errors.New("boom")}, "")

	_, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic chat")
}

func TestOpenAIProvider_ChatSync(t *testing.T) {
	mock := &mockOpenAIClient{
		response: openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: "done"},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4},
		},
	}
	p := NewOpenAIProviderWithClient(mock, "gpt-4o")

	resp, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{MaxTokens: 100})
	require.NoError(t, err)

	assert.Equal(t, "done", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 4, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o", mock.captured.Model)
	assert.Equal(t, 100, mock.captured.MaxTokens)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := NewOpenAIProviderWithClient(&mockOpenAIClient{}, "")

	_, err := p.ChatSync(context.Background(), []Message{NewUserMessage("hi")}, ChatOptions{})
	assert.EqualError(t, err, "no choices in response")
}
