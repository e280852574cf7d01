// Package screens holds the terminal UI screens. Subpackages receive their
// collaborators through Deps.
package screens

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/edusheet/internal/store"
)

// Deps are the services screens may use. Worksheets may be nil when the
// UI only runs a shared link.
type Deps struct {
	Worksheets store.WorksheetRepo
	PublicURL  string

	// LLMConfigured reports whether generation has a provider key.
	LLMConfigured bool
	Logger        logrus.FieldLogger
	Now           func() time.Time
}

// Log returns the configured logger or one that discards output.
func (d Deps) Log() logrus.FieldLogger {
	if d.Logger != nil {
		return d.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Clock returns the configured time source or time.Now.
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}
