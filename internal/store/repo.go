package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/edusheet/internal/worksheet"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// WorksheetRepo persists worksheets. Writes are full replacements.
type WorksheetRepo interface {
	// Save validates and upserts a worksheet. A missing id is generated and
	// the creation time of an existing record is kept.
	Save(ctx context.Context, ws *worksheet.Worksheet) error

	// Get returns the worksheet with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*worksheet.Worksheet, error)

	// List returns all worksheets, most recently updated first.
	List(ctx context.Context) ([]worksheet.Worksheet, error)

	// Delete removes a worksheet or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// KV is a string store keyed by namespace and key.
type KV interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error

	// List returns every key and value in a namespace.
	List(ctx context.Context, namespace string) (map[string]string, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
