package questiongen

import (
	"fmt"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// Validator checks one generated question.
type Validator interface {
	// Name identifies the validator in errors and logs.
	Name() string

	// Validate returns nil when q is usable. accepted holds the questions
	// already kept from the same response.
	Validate(q *worksheet.Question, accepted []worksheet.Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regenerating is likely to help
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
