package llmclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	standardTimeout      = 90 * time.Second
	extendedTimeout      = 180 * time.Second
	maxRetries           = 2
	baseDelay            = 2 * time.Second
	defaultRateLimitWait = 30 * time.Second
)

// Call issues req against client with a timeout, retry, and backoff policy:
// 90s standard / 180s extended timeout, at most two retries with a 2s base
// delay plus exponential backoff and jitter, and on HTTP 429 a wait of the
// provider's Retry-After (or 30s if unspecified).
//
// Call never returns a raw provider error: failures are always *Error so
// callers can match on Kind. Cancellation of ctx aborts immediately and is
// never retried.
func Call(ctx context.Context, client Client, req Request) (Response, error) {
	timeout := standardTimeout
	if req.Extended {
		timeout = extendedTimeout
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = baseDelay
	policy.MaxElapsedTime = 0 // bounded by maxRetries below, not wall time
	policy.Reset()

	var (
		resp    Response
		lastErr error
	)

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Response{}, &Error{Kind: KindTimeout, Err: err}
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, lastErr = client.Complete(callCtx, req.Model, req.System, req.User, req.MaxTokens, req.StopSequences, req.Temperature)
		cancel()

		if lastErr == nil {
			return resp, nil
		}

		llmErr := normalize(lastErr)
		if !retryable(llmErr.Kind) || attempt == maxRetries {
			return Response{}, llmErr
		}

		wait := policy.NextBackOff()
		if llmErr.Kind == KindRateLimited {
			wait = llmErr.RetryAfter
			if wait <= 0 {
				wait = defaultRateLimitWait
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, &Error{Kind: KindTimeout, Err: ctx.Err()}
		case <-timer.C:
		}
	}

	return Response{}, normalize(lastErr)
}

// normalize ensures every error leaving this package carries a Kind.
func normalize(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}
	return &Error{Kind: KindNetwork, Err: err}
}

// retryable reports whether a failure of the given Kind should be retried.
// Configuration-shaped failures (auth, bad request) never are; everything
// transient is, up to maxRetries.
func retryable(k Kind) bool {
	switch k {
	case KindAuth, KindBadRequest:
		return false
	default:
		return true
	}
}
