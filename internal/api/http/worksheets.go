package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/edusheet/internal/share"
	"github.com/abhisek/edusheet/internal/store"
	"github.com/abhisek/edusheet/internal/worksheet"
)

// defaultCodeSize is the PNG edge length when ?size is absent.
const defaultCodeSize = 512

type shareResponse struct {
	Link    string `json:"link"`
	Token   string `json:"token"`
	Warning string `json:"warning,omitempty"`
}

// GET /api/worksheets
func (s *server) listWorksheets(w http.ResponseWriter, r *http.Request) {
	list, err := s.Worksheets.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if list == nil {
		list = []worksheet.Worksheet{}
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /api/worksheets
func (s *server) saveWorksheet(w http.ResponseWriter, r *http.Request) {
	var ws worksheet.Worksheet
	if !decodeBody(w, r, &ws) {
		return
	}
	if ws.AnswerKey == nil {
		ws.AnswerKey = worksheet.BuildAnswerKey(ws.Questions)
	}
	if err := s.Worksheets.Save(r.Context(), &ws); err != nil {
		if s.validationError(w, err) {
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

// GET /api/worksheets/{id}
func (s *server) getWorksheet(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.loadWorksheet(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// DELETE /api/worksheets/{id}
func (s *server) deleteWorksheet(w http.ResponseWriter, r *http.Request) {
	err := s.Worksheets.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/worksheets/{id}/share
func (s *server) shareWorksheet(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.loadWorksheet(w, r)
	if !ok {
		return
	}
	link, err := share.BuildLink(s.PublicURL, ws)
	s.Metrics.RecordShare(err)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unshareable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{Link: link.URL, Token: link.Token, Warning: link.Warning()})
}

// GET /api/worksheets/{id}/share/qr.png
func (s *server) shareCode(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.loadWorksheet(w, r)
	if !ok {
		return
	}
	size := defaultCodeSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 64 || n > 2048 {
			writeError(w, http.StatusBadRequest, "bad_size", "size must be between 64 and 2048")
			return
		}
		size = n
	}

	link, err := share.BuildLink(s.PublicURL, ws)
	s.Metrics.RecordShare(err)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unshareable", err.Error())
		return
	}
	png, err := share.PNGCode(link.URL, size)
	if errors.Is(err, share.ErrLinkTooLongForCode) {
		writeError(w, http.StatusRequestEntityTooLarge, "link_too_long", err.Error())
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	_, _ = w.Write(png)
}

func (s *server) loadWorksheet(w http.ResponseWriter, r *http.Request) (*worksheet.Worksheet, bool) {
	ws, err := s.Worksheets.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return nil, false
	}
	if err != nil {
		s.internalError(w, r, err)
		return nil, false
	}
	return ws, true
}

func (s *server) validationError(w http.ResponseWriter, err error) bool {
	var ve worksheet.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Message: ve.Error(), Details: []worksheet.FieldError(ve)})
	return true
}

func (s *server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal", "")
}
