// Package http serves worksheets, share links and stateless grading over
// a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/metrics"
	"github.com/abhisek/edusheet/internal/questiongen"
	"github.com/abhisek/edusheet/internal/store"
)

// Deps are the collaborators the API is built on.
type Deps struct {
	Worksheets store.WorksheetRepo

	// Generator may be nil, in which case /api/generate answers 503.
	Generator questiongen.Generator

	Metrics *metrics.Metrics
	Logger  logrus.FieldLogger

	// PublicURL is the origin and path share links are built on.
	PublicURL   string
	CORSOrigins []string

	// SchoolName and ClassName prefill generated worksheets.
	SchoolName string
	ClassName  string

	Now func() time.Time
}

type server struct {
	Deps
	validate *validator.Validate
}

// NewRouter builds the API handler.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}
	s := &server{Deps: d, validate: validator.New()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(d.Logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(instrument(d.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api", func(ar chi.Router) {
		ar.Route("/worksheets", func(wr chi.Router) {
			wr.Get("/", s.listWorksheets)
			wr.Post("/", s.saveWorksheet)
			wr.Get("/{id}", s.getWorksheet)
			wr.Delete("/{id}", s.deleteWorksheet)
			wr.Post("/{id}/share", s.shareWorksheet)
			wr.Get("/{id}/share/qr.png", s.shareCode)
		})
		ar.Get("/online/{token}", s.openOnline)
		ar.Post("/online/{token}/grade", s.gradeOnline)
		ar.Post("/generate", s.generate)
	})
	return r
}
