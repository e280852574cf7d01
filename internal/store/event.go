package store

import (
	"context"
	"fmt"
	"sync"
)

const seqLLMEvents = "llm_events"

// sequence numbers one named event stream. Row ids can repeat after a
// backup import; sequence numbers do not.
type sequence struct {
	mu   sync.Mutex
	db   querier
	name string
}

func newSequence(db querier, name string) *sequence {
	return &sequence{db: db, name: name}
}

// Next returns the stream's next number, starting at 1.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, next_val) VALUES (?, 2)
		 ON CONFLICT (name) DO UPDATE SET next_val = next_val + 1
		 RETURNING next_val - 1`,
		s.name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", s.name, err)
	}
	return n, nil
}
