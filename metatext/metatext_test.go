package metatext_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/metatext"
	"github.com/Tangerg/cleanforge/promptstore"
)

type fakeClient struct {
	text string
	err  error
}

func (f fakeClient) Complete(ctx context.Context, model, system, user string, maxTokens int, stopSequences []string, temperature float64) (llmclient.Response, error) {
	if f.err != nil {
		return llmclient.Response{}, f.err
	}
	return llmclient.Response{Text: f.text}, nil
}

func (f fakeClient) Validate(ctx context.Context) bool { return true }

func newStore(t *testing.T) promptstore.Store {
	t.Helper()
	ms := promptstore.NewMemoryStore()
	require.NoError(t, ms.Register(promptstore.ContentTypeDetectionV1, "{{.excerpt}}"))
	return ms
}

func TestService_Extract_ReturnsZeroValueWithoutClient(t *testing.T) {
	var svc metatext.Service
	doc := document.New("Copyright 2020\nA Novel\nby Author")
	meta, ok := svc.Extract(context.Background(), doc, 2)
	require.False(t, ok)
	assert.Equal(t, "", meta.Title)
}

func TestService_Extract_ParsesMetadataFields(t *testing.T) {
	svc := metatext.Service{
		Client:  fakeClient{text: `{"title":"A Novel","author":"Jane Doe","language":"en"}`},
		Prompts: newStore(t),
	}
	doc := document.New(strings.Join([]string{"Copyright 2020", "A Novel", "by Jane Doe"}, "\n"))
	meta, ok := svc.Extract(context.Background(), doc, 3)
	require.True(t, ok)
	assert.Equal(t, "A Novel", meta.Title)
	assert.Equal(t, "Jane Doe", meta.Author)
	assert.Equal(t, "en", meta.Language)
}
