package llm

import (
	"context"
	"errors"
	"fmt"
)

// FallbackProvider tries a chain of providers in order and returns the
// first success.
type FallbackProvider struct {
	chain []Provider
}

// WithFallback chains providers. The first one is primary; ModelID reports
// it. A single provider is returned unwrapped.
func WithFallback(primary Provider, rest ...Provider) Provider {
	if len(rest) == 0 {
		return primary
	}
	chain := append([]Provider{primary}, rest...)
	return &FallbackProvider{chain: chain}
}

func (f *FallbackProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var errs []error
	for _, p := range f.chain {
		resp, err := p.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !shouldFallback(err) {
			return nil, err
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.ModelID(), err))
	}
	return nil, errors.Join(errs...)
}

func (f *FallbackProvider) ModelID() string {
	return f.chain[0].ModelID()
}

// shouldFallback reports whether another model could succeed where this
// one failed. A rejected key is rejected for every model of the vendor.
func shouldFallback(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var badKey *ErrInvalidAPIKey
	return !errors.As(err, &badKey)
}
