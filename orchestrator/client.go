package orchestrator

import (
	"context"

	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/pipectx"
)

// usageTrackingClient decorates an injected llmclient.Client so every
// completion's reported token usage is folded into the run's
// pipectx.Context.Usage running totals, without any of the
// LLM-driven services (recon, metatext, reflow, review) needing to thread
// usage back through their own return values.
type usageTrackingClient struct {
	inner llmclient.Client
	pc    *pipectx.Context
}

// newUsageTrackingClient wraps inner, or returns nil if inner is nil so a
// caller with no LLM client configured still sees every service's own
// nil-client fallback path engage exactly as if no wrapping had happened.
func newUsageTrackingClient(inner llmclient.Client, pc *pipectx.Context) llmclient.Client {
	if inner == nil {
		return nil
	}
	return &usageTrackingClient{inner: inner, pc: pc}
}

func (c *usageTrackingClient) Complete(ctx context.Context, model, system, user string, maxTokens int, stopSequences []string, temperature float64) (llmclient.Response, error) {
	resp, err := c.inner.Complete(ctx, model, system, user, maxTokens, stopSequences, temperature)
	if err == nil {
		c.pc.Usage.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	return resp, err
}

func (c *usageTrackingClient) Validate(ctx context.Context) bool {
	return c.inner.Validate(ctx)
}
