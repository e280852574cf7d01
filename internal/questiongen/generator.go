package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// Generator produces worksheet questions from source material.
type Generator interface {
	// Generate returns the questions that passed every validator, in the
	// order the model produced them.
	Generate(ctx context.Context, in Input) ([]worksheet.Question, error)
}

// ErrNoQuestions is returned when every attempt yields no usable question.
var ErrNoQuestions = errors.New("questiongen: model returned no usable questions")

// LLMGenerator implements Generator on an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      logrus.FieldLogger
	newID    func() string
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log, newID: uuid.NewString}
}

// rawQuestion mirrors one item of QuestionsSchema.
type rawQuestion struct {
	Content       string                   `json:"content"`
	Type          string                   `json:"type"`
	Options       []string                 `json:"options"`
	CorrectAnswer string                   `json:"correctAnswer"`
	Explanation   string                   `json:"explanation"`
	Difficulty    string                   `json:"difficulty"`
	MatchingPairs []worksheet.MatchingPair `json:"matchingPairs"`
}

type rawResponse struct {
	Questions []rawQuestion `json:"questions"`
}

func (g *LLMGenerator) Generate(ctx context.Context, in Input) ([]worksheet.Question, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeWorksheetGen)

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= g.config.Retries; attempt++ {
		questions, err := g.attempt(ctx, req, in)
		if err == nil {
			return questions, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		g.log.WithError(err).WithField("attempt", attempt+1).Warn("regenerating questions")
	}
	return nil, lastErr
}

func (g *LLMGenerator) attempt(ctx context.Context, req llm.Request, in Input) ([]worksheet.Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw rawResponse
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var accepted []worksheet.Question
	for i, rq := range raw.Questions {
		q := g.toQuestion(rq, in)
		if verr := g.validate(&q, accepted); verr != nil {
			g.log.WithFields(logrus.Fields{
				"index":     i,
				"validator": verr.Validator,
			}).Debug("dropping generated question: " + verr.Message)
			continue
		}
		accepted = append(accepted, q)
	}

	if len(accepted) == 0 {
		return nil, &ValidationError{
			Validator: "generator",
			Message:   fmt.Sprintf("%s (%d candidates)", ErrNoQuestions, len(raw.Questions)),
			Retryable: true,
		}
	}
	return accepted, nil
}

// toQuestion applies request defaults and normalization to a raw item.
func (g *LLMGenerator) toQuestion(rq rawQuestion, in Input) worksheet.Question {
	q := worksheet.Question{
		ID:            g.newID(),
		Content:       rq.Content,
		Type:          worksheet.QuestionType(rq.Type),
		Options:       rq.Options,
		CorrectAnswer: rq.CorrectAnswer,
		Explanation:   rq.Explanation,
		Difficulty:    worksheet.Difficulty(rq.Difficulty),
		MatchingPairs: rq.MatchingPairs,
	}
	if q.Type == "" {
		q.Type = in.Types[0]
	}
	if q.Difficulty == "" {
		q.Difficulty = in.Difficulty
	}
	normalizeQuestion(&q)
	return q
}

func (g *LLMGenerator) validate(q *worksheet.Question, accepted []worksheet.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, accepted); verr != nil {
			return verr
		}
	}
	return nil
}
