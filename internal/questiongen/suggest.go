package questiongen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/worksheet"
)

const (
	minSuggestions = 3
	maxSuggestions = 5
)

// fallbackSuggestion is returned whenever the model cannot help.
func fallbackSuggestion() []worksheet.QuestionType {
	return []worksheet.QuestionType{worksheet.TypeMultipleChoice}
}

// Suggester recommends question types for a piece of material.
type Suggester struct {
	provider llm.Provider
	log      logrus.FieldLogger
}

// NewSuggester creates a Suggester. A nil logger uses the standard logger.
func NewSuggester(provider llm.Provider, log logrus.FieldLogger) *Suggester {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Suggester{provider: provider, log: log}
}

// Suggest returns up to five known types, most suitable first. It never
// returns an empty list; failures fall back to multiple choice.
func (s *Suggester) Suggest(ctx context.Context, content string, subject worksheet.Subject) []worksheet.QuestionType {
	content = strings.TrimSpace(content)
	if content == "" {
		return fallbackSuggestion()
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeSuggest)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildSuggestMessage(content, subject)}},
		Schema:      SuggestionSchema,
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.WithError(err).Warn("type suggestion failed")
		return fallbackSuggestion()
	}

	var out struct {
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		s.log.WithError(err).Warn("type suggestion unreadable")
		return fallbackSuggestion()
	}

	seen := make(map[worksheet.QuestionType]bool)
	var types []worksheet.QuestionType
	for _, raw := range out.Types {
		t := worksheet.QuestionType(strings.TrimSpace(raw))
		if !t.Valid() || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
		if len(types) == maxSuggestions {
			break
		}
	}
	if len(types) == 0 {
		return fallbackSuggestion()
	}
	if len(types) < minSuggestions {
		s.log.WithField("count", len(types)).Debug("fewer suggestions than asked for")
	}
	return types
}
