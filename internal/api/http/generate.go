package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/questiongen"
	"github.com/abhisek/edusheet/internal/worksheet"
)

type generateRequest struct {
	Content    string   `json:"content" validate:"required"`
	SubjectID  string   `json:"subjectId"`
	Grade      string   `json:"gradeLevel" validate:"omitempty,oneof=primary secondary high_school"`
	Types      []string `json:"types" validate:"omitempty,max=15,dive,required"`
	Count      int      `json:"count" validate:"omitempty,min=1,max=50"`
	Difficulty string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Mode       string   `json:"mode" validate:"omitempty,oneof=exact change_context change_numbers change_both"`
	Language   string   `json:"language" validate:"omitempty,oneof=vi en fr"`
	Title      string   `json:"title"`
	SchoolName string   `json:"schoolName"`
	ClassName  string   `json:"className"`
}

func (g generateRequest) input() questiongen.Input {
	types := make([]worksheet.QuestionType, len(g.Types))
	for i, t := range g.Types {
		types[i] = worksheet.QuestionType(t)
	}
	return questiongen.Input{
		Content:    g.Content,
		Subject:    worksheet.LookupSubject(g.SubjectID),
		Grade:      worksheet.GradeLevel(g.Grade),
		Types:      types,
		Count:      g.Count,
		Difficulty: worksheet.Difficulty(g.Difficulty),
		Mode:       questiongen.ContentMode(g.Mode),
		Language:   questiongen.Language(g.Language),
	}
}

// POST /api/generate
func (s *server) generate(w http.ResponseWriter, r *http.Request) {
	if s.Generator == nil {
		writeError(w, http.StatusServiceUnavailable, "no_provider", "no LLM provider is configured")
		return
	}
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]worksheet.FieldError, len(verrs))
			for i, fe := range verrs {
				details[i] = worksheet.FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: "failed " + fe.Tag()}
			}
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Details: details})
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	in := req.input()
	questions, err := s.Generator.Generate(r.Context(), in)
	s.Metrics.RecordGeneration(err)
	if err != nil {
		s.generationError(w, r, err)
		return
	}

	school, class := req.SchoolName, req.ClassName
	if school == "" {
		school = s.SchoolName
	}
	if class == "" {
		class = s.ClassName
	}
	ws := questiongen.Assemble(in, questions, questiongen.Meta{Title: req.Title, SchoolName: school, ClassName: class})
	if err := s.Worksheets.Save(r.Context(), ws); err != nil {
		if s.validationError(w, err) {
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

func (s *server) generationError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rateLimit *llm.ErrRateLimit
		badKey    *llm.ErrInvalidAPIKey
		verr      *questiongen.ValidationError
	)
	switch {
	case errors.Is(err, questiongen.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "empty_content", err.Error())
	case errors.As(err, &rateLimit):
		writeError(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.As(err, &badKey):
		writeError(w, http.StatusBadGateway, "provider_rejected_key", err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadGateway, "no_usable_questions", err.Error())
	default:
		s.Logger.WithError(err).WithField("path", r.URL.Path).Warn("generation failed")
		writeError(w, http.StatusBadGateway, "generation_failed", err.Error())
	}
}
