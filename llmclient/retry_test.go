package llmclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/llmclient"
)

type fakeClient struct {
	calls   int
	fail    []error
	succeed llmclient.Response
}

func (f *fakeClient) Complete(ctx context.Context, model, system, user string, maxTokens int, stop []string, temp float64) (llmclient.Response, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.fail) {
		return llmclient.Response{}, f.fail[idx]
	}
	return f.succeed, nil
}

func (f *fakeClient) Validate(ctx context.Context) bool { return true }

func TestCall_RetriesTransientThenSucceeds(t *testing.T) {
	c := &fakeClient{
		fail:    []error{&llmclient.Error{Kind: llmclient.KindNetwork}},
		succeed: llmclient.Response{Text: "ok"},
	}
	resp, err := llmclient.Call(context.Background(), c, llmclient.Request{Model: "m", MaxTokens: 10})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, c.calls)
}

func TestCall_DoesNotRetryAuthErrors(t *testing.T) {
	c := &fakeClient{fail: []error{&llmclient.Error{Kind: llmclient.KindAuth}}}
	_, err := llmclient.Call(context.Background(), c, llmclient.Request{Model: "m"})
	require.Error(t, err)
	e, ok := llmclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, llmclient.KindAuth, e.Kind)
	assert.Equal(t, 1, c.calls)
}

func TestCall_GivesUpAfterMaxRetries(t *testing.T) {
	c := &fakeClient{fail: []error{
		&llmclient.Error{Kind: llmclient.KindTimeout},
		&llmclient.Error{Kind: llmclient.KindTimeout},
		&llmclient.Error{Kind: llmclient.KindTimeout},
	}}
	_, err := llmclient.Call(context.Background(), c, llmclient.Request{Model: "m"})
	require.Error(t, err)
	assert.Equal(t, 3, c.calls)
}

func TestCall_WrapsUntaggedErrorAsNetwork(t *testing.T) {
	c := &fakeClient{fail: []error{assertErr{}, assertErr{}, assertErr{}}}
	_, err := llmclient.Call(context.Background(), c, llmclient.Request{Model: "m"})
	e, ok := llmclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, llmclient.KindNetwork, e.Kind)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
