// Package llmclient defines the LLM client capability the pipeline consumes
// and wraps it with the timeout/retry/backoff policy every call site needs.
//
// The interface is a single Call-style method parameterised over a concrete
// request/response shape, since the pipeline only ever drives one kind of
// model interaction: a completion over a rendered prompt.
package llmclient

import (
	"context"
	"errors"
	"time"
)

// Kind is the error-taxonomy tag every LLM failure is normalised to. The
// pipeline never logs raw provider errors (and never logs API keys); callers
// branch on Kind, not on provider-specific error strings.
type Kind string

const (
	KindAuth        Kind = "auth"
	KindRateLimited Kind = "rateLimited"
	KindTimeout     Kind = "timeout"
	KindNetwork     Kind = "network"
	KindBadRequest  Kind = "badRequest"
	KindServerError Kind = "serverError"
)

// Error wraps an underlying provider error with its taxonomy Kind and,
// for KindRateLimited, the provider's requested backoff.
type Error struct {
	Kind       Kind
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts an *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Usage reports token consumption for a single completion, the granularity
// running totals are tracked at.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is what a completion call returns.
type Response struct {
	Text       string
	Usage      Usage
	StopReason string
}

// Client is the capability the core is injected with. Implementations are
// responsible for network transport only; timeout, retry, and backoff are
// applied by Call in this package, not by the implementation.
type Client interface {
	// Complete issues one completion request. Implementations should return
	// an *Error with the correct Kind on failure so Call's retry policy can
	// make the right decision; an error that is not an *Error is treated as
	// KindNetwork (transient, retryable).
	Complete(ctx context.Context, model, system, user string, maxTokens int, stopSequences []string, temperature float64) (Response, error)

	// Validate reports whether the client is usable (e.g. credentials
	// present and accepted) without issuing a billable completion.
	Validate(ctx context.Context) bool
}

// Request bundles a completion's parameters.
type Request struct {
	Model         string
	System        string
	User          string
	MaxTokens     int
	StopSequences []string
	Temperature   float64
	// Extended selects the 180s timeout instead of the 90s standard timeout,
	// for calls known to need more headroom (reflow chunks).
	Extended bool
}
