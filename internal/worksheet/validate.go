package worksheet

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single validation failure on a worksheet.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors collects every failure found by Validate.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

var (
	validateOnce sync.Once
	structValid  *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
			return QuestionType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
			return Difficulty(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("gradelevel", func(fl validator.FieldLevel) bool {
			return GradeLevel(fl.Field().String()).Valid()
		})
		v.RegisterStructValidation(questionStructLevel, Question{})
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structValid = v
	})
	return structValid
}

// questionStructLevel enforces that options and matching pairs only appear
// on the types that use them, and never together.
func questionStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if len(q.Options) > 0 && len(q.MatchingPairs) > 0 {
		sl.ReportError(q.Options, "options", "Options", "exclusive", "")
		return
	}
	if len(q.Options) > 0 && !q.Type.HasOptions() {
		sl.ReportError(q.Options, "options", "Options", "options_type", string(q.Type))
	}
	if len(q.MatchingPairs) > 0 && !q.Type.HasPairs() {
		sl.ReportError(q.MatchingPairs, "matchingPairs", "MatchingPairs", "pairs_type", string(q.Type))
	}
}

// Validate checks the worksheet before it is persisted.
func (w *Worksheet) Validate() error {
	err := structValidator().Struct(w)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   trimNamespace(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

// trimNamespace drops the leading struct name from a validator namespace.
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s item(s)", fe.Param())
	case "questiontype":
		return fmt.Sprintf("unknown question type %q", fe.Value())
	case "difficulty":
		return fmt.Sprintf("unknown difficulty %q", fe.Value())
	case "gradelevel":
		return fmt.Sprintf("unknown grade level %q", fe.Value())
	case "exclusive":
		return "options and matchingPairs cannot both be set"
	case "options_type":
		return fmt.Sprintf("options are not used by type %s", fe.Param())
	case "pairs_type":
		return fmt.Sprintf("matchingPairs are not used by type %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
