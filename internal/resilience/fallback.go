// Package resilience provides failure-handling primitives for outbound calls.
package resilience

import (
	"context"

	"go.uber.org/zap"
)

// FallbackConfig controls first-success iteration over an ordered candidate
// list. There is no per-candidate retry and no backoff: a single pass, moving
// to the next candidate on any failure.
type FallbackConfig struct {
	// OnFailure is called after each failed candidate with its position,
	// label, and error.
	OnFailure func(index int, label string, err error)
}

// FirstSuccess runs fn against each candidate in order and returns the first
// successful result. Context cancellation stops iteration immediately. When
// every candidate fails, the last error is returned wrapped in an
// ExhaustedError carrying the attempt count.
func FirstSuccess[C, T any](ctx context.Context, cfg FallbackConfig, candidates []C, label func(C) string, fn func(ctx context.Context, c C) (T, error)) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, ErrNoCandidates
	}

	var lastErr error
	for i, c := range candidates {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		val, err := fn(ctx, c)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if cfg.OnFailure != nil {
			cfg.OnFailure(i, label(c), err)
		}
	}

	return zero, &ExhaustedError{Attempts: len(candidates), Last: lastErr}
}

// FailureLogger returns an OnFailure callback that logs each failed candidate.
func FailureLogger(service string) func(int, string, error) {
	return func(index int, label string, err error) {
		zap.L().Warn("candidate failed, trying next",
			zap.String("service", service),
			zap.Int("index", index),
			zap.String("candidate", label),
			zap.Error(err),
		)
	}
}
