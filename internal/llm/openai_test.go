package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": "Đây là câu hỏi:\n```json\n{\"content\":\"2 + 3 = ?\",\"difficulty\":\"easy\"}\n```",
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Bạn là giáo viên.",
		Messages:  []Message{{Role: RoleUser, Content: "Tạo một câu hỏi."}},
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 {
		t.Fatalf("expected 40 input tokens, got %d", resp.Usage.InputTokens)
	}
	if resp.Usage.OutputTokens != 25 {
		t.Fatalf("expected 25 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if string(resp.Content) != `{"content":"2 + 3 = ?","difficulty":"easy"}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_exceeded", func(err error) bool {
			var target *ErrRateLimit
			return errors.As(err, &target)
		}},
		{"server error", http.StatusBadGateway, "", func(err error) bool {
			var target *ErrProviderUnavailable
			return errors.As(err, &target)
		}},
		{"bad key", http.StatusUnauthorized, "invalid_api_key", func(err error) bool {
			var target *ErrInvalidAPIKey
			return errors.As(err, &target)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": tt.name, "code": tt.code},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "Tạo đề."}},
				MaxTokens: 100,
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("status %d mapped to %T (%v)", tt.status, err, err)
			}
		})
	}
}

func TestOpenAIProvider_ModelNames(t *testing.T) {
	tests := []struct {
		cfg  OpenAIConfig
		want string
	}{
		{OpenAIConfig{APIKey: "k", Model: "gpt-mini"}, "gpt-4.1-mini"},
		{OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://openrouter.ai/api/v1"}, "gpt-4o"},
	}
	for _, tt := range tests {
		p, err := NewOpenAIProvider(tt.cfg)
		if err != nil {
			t.Fatalf("NewOpenAIProvider(%q): %v", tt.cfg.Model, err)
		}
		if p.ModelID() != tt.want {
			t.Errorf("ModelID() = %q, want %q", p.ModelID(), tt.want)
		}
	}
}
