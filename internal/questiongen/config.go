package questiongen

import "github.com/sirupsen/logrus"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question. A question that
	// fails any of them is dropped.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// Retries is how many extra calls are made when a response yields no
	// usable question.
	Retries int

	Logger logrus.FieldLogger
}

// DefaultConfig returns the structural validator chain and the sampling
// settings worksheets are generated with.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
		Retries:     1,
	}
}
