package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return &GeminiProvider{client: client, model: "gemini-3-flash-preview"}
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finish,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 80,
			"totalTokenCount":      200,
		},
	}
}

func writeGeminiError(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message, "status": status},
	})
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var gotPath string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"content":"5 + 3 = ?","difficulty":"easy"}`, "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "Bạn là giáo viên.",
		Messages:  []Message{{Role: RoleUser, Content: "Tạo một câu hỏi."}},
		Schema:    questionSchema(),
		MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotPath, "gemini-3-flash-preview:generateContent") {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 80 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestGeminiProvider_FencedJSON(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("```json\n{\"content\":\"x\",\"difficulty\":\"medium\"}\n```", "STOP"))
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
		Schema:   questionSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"content":"x","difficulty":"medium"}` {
		t.Fatalf("unexpected content %s", resp.Content)
	}
}

func TestGeminiProvider_Truncated(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"content":"x","diffi`, "MAX_TOKENS"))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
		Schema:   questionSchema(),
	})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		status  string
		message string
		check   func(error) bool
	}{
		{"rate limit", 429, "RESOURCE_EXHAUSTED", "quota exceeded", func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", 503, "UNAVAILABLE", "overloaded", func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad key", 400, "INVALID_ARGUMENT", "API key not valid. Please pass a valid API key.", func(err error) bool {
			var e *ErrInvalidAPIKey
			return errors.As(err, &e)
		}},
		{"forbidden", 403, "PERMISSION_DENIED", "denied", func(err error) bool {
			var e *ErrInvalidAPIKey
			return errors.As(err, &e)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeGeminiError(w, tt.code, tt.status, tt.message)
			})
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "q"}},
			})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error mapping: %T (%v)", err, err)
			}
		})
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"flash", "gemini-3-flash-preview"},
		{"gemini-3-pro-preview", "gemini-3-pro-preview"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiWithModelSharesClient(t *testing.T) {
	p := &GeminiProvider{model: "gemini-3-flash-preview"}
	q := p.withModel("pro")
	if q.ModelID() != "gemini-3-pro-preview" {
		t.Fatalf("ModelID() = %q", q.ModelID())
	}
	if q.client != p.client {
		t.Fatal("client should be shared")
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content":     map[string]any{"type": "string"},
			"explanation": map[string]any{"type": []any{"string", "null"}},
			"difficulty":  map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"content", "difficulty"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	expl := schema.Properties["explanation"]
	if expl.Type != genai.TypeString || expl.Nullable == nil || !*expl.Nullable {
		t.Fatalf("explanation should be a nullable string, got %+v", expl)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["options"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING items, got %s", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
