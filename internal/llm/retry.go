package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryProvider retries transient errors with exponential backoff and
// jitter. It sits outside the fallback chain, so one attempt walks every
// model before backing off.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    logrus.FieldLogger
}

// RetryOption configures a RetryProvider.
type RetryOption func(*RetryProvider)

// RetryLogger reports each retry at info level.
func RetryLogger(log logrus.FieldLogger) RetryOption {
	return func(r *RetryProvider) { r.log = log }
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, opts ...RetryOption) Provider {
	r := &RetryProvider{inner: p, config: cfg}
	for _, o := range opts {
		o(r)
	}
	return r
}

// retryClass says how an error is treated.
type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

func classify(err error) retryClass {
	var (
		maxTok  *ErrMaxTokensExceeded
		badKey  *ErrInvalidAPIKey
		invResp *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &badKey):
		return retryNever
	case errors.As(err, &invResp):
		// The model produced something; asking again rarely helps twice.
		return retryOnce
	}
	return retryAlways
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	retriedInvalid := false

	var lastErr error
	for attempt := range attempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}
		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		if r.log != nil {
			r.log.WithError(err).WithFields(logrus.Fields{
				"purpose": PurposeFrom(ctx),
				"attempt": attempt + 1,
				"wait":    wait.String(),
			}).Info("retrying LLM request")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is InitialWait*Multiplier^attempt with ±20% jitter, capped at
// MaxWait. A rate limit's RetryAfter wins but is capped the same way.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if r.config.MaxWait > 0 && rl.RetryAfter > r.config.MaxWait {
			return r.config.MaxWait
		}
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 {
		wait = math.Min(wait, float64(r.config.MaxWait))
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
