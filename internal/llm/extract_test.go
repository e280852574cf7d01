package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"surrounding whitespace", "\n  {\"a\":1}\n", `{"a":1}`, true},
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!", `{"a":1}`, true},
		{"plain fence", "```\n[1,2]\n```", `[1,2]`, true},
		{"prose around object", `Sure! {"questions":[{"content":"x"}]} Hope it helps.`, `{"questions":[{"content":"x"}]}`, true},
		{"prose around array", `Result: [{"a":1},{"b":2}] done`, `[{"a":1},{"b":2}]`, true},
		{"no json", "Xin lỗi, tôi không thể giúp.", "", false},
		{"truncated", `{"questions":[{"content":"x"`, "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.in)
			if ok != tt.ok {
				t.Fatalf("extractJSON() ok = %v, want %v", ok, tt.ok)
			}
			if string(got) != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeContent(t *testing.T) {
	t.Run("no schema passes text through", func(t *testing.T) {
		got, err := decodeContent(nil, "plain text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "plain text" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("fenced JSON is validated", func(t *testing.T) {
		got, err := decodeContent(questionSchema(), "```json\n{\"content\":\"x\",\"difficulty\":\"easy\"}\n```")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `{"content":"x","difficulty":"easy"}` {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("no JSON is invalid", func(t *testing.T) {
		_, err := decodeContent(questionSchema(), "no json here")
		var invErr *ErrInvalidResponse
		if !errors.As(err, &invErr) {
			t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
		}
	})
}
