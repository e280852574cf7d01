package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/edusheet/internal/grading"
	"github.com/abhisek/edusheet/internal/share"
)

type gradeRequest struct {
	Answers map[string]string `json:"answers"`
}

// GET /api/online/{token}
func (s *server) openOnline(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeToken(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /api/online/{token}/grade
//
// Grading is stateless: the token carries the answers to check against and
// nothing about the submission is stored.
func (s *server) gradeOnline(w http.ResponseWriter, r *http.Request) {
	p, ok := s.decodeToken(w, r)
	if !ok {
		return
	}
	var req gradeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result := grading.Grade(p.Questions, grading.AnswerSet(req.Answers))
	s.Metrics.RecordGrade(result.Percentage)
	writeJSON(w, http.StatusOK, result)
}

// decodeToken maps every decode failure to the single invalid-link
// response.
func (s *server) decodeToken(w http.ResponseWriter, r *http.Request) (*share.Projection, bool) {
	p, err := share.Decode(chi.URLParam(r, "token"))
	s.Metrics.RecordDecode(err)
	if err != nil {
		s.Logger.WithError(err).Debug("invalid share token")
		writeError(w, http.StatusBadRequest, "invalid_link", "")
		return nil, false
	}
	return p, true
}
