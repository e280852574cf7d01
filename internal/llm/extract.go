package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSON pulls a JSON document out of model text. It tries the text as
// is, then the first fenced code block, then the span between the first
// opening brace or bracket and the last matching closer.
func extractJSON(text string) (json.RawMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), true
	}

	if m := fencePattern.FindStringSubmatch(text); m != nil {
		inner := strings.TrimSpace(m[1])
		if json.Valid([]byte(inner)) {
			return json.RawMessage(inner), true
		}
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start >= 0 && end > start {
			span := text[start : end+1]
			if json.Valid([]byte(span)) {
				return json.RawMessage(span), true
			}
		}
	}
	return nil, false
}

// decodeContent turns raw model text into the response Content. Without a
// schema the text is passed through untouched.
func decodeContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(text), nil
	}
	content, ok := extractJSON(text)
	if !ok {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     errors.New("no JSON document in response"),
		}
	}
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
