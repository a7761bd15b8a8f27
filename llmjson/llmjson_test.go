package llmjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/llmjson"
)

func TestExtract_StripsCodeFence(t *testing.T) {
	raw := "Here you go:\n```json\n{\"a\": 1}\n```\nThanks."
	out, err := llmjson.Extract(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, out)
}

func TestExtract_LocatesOutermostBraces(t *testing.T) {
	raw := `prose prefix { "a": {"b": 1}, "c": [1,2] } prose suffix`
	out, err := llmjson.Extract(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": {"b": 1}, "c": [1,2]}`, out)
}

func TestExtract_RepairsTrailingComma(t *testing.T) {
	raw := `{"a": 1, "b": 2,}`
	out, err := llmjson.Extract(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": 2}`, out)
}

func TestExtract_NoJSONReturnsError(t *testing.T) {
	_, err := llmjson.Extract("no json here")
	assert.ErrorIs(t, err, llmjson.ErrNoJSONFound)
}

func TestResult_FloatCoercesNumericString(t *testing.T) {
	r, err := llmjson.Parse(`{"confidence": "0.87"}`)
	require.NoError(t, err)
	assert.InDelta(t, 0.87, r.Float("confidence", 0), 0.001)
}

func TestResult_ConfidenceClamps(t *testing.T) {
	r, err := llmjson.Parse(`{"confidence": 1.4}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Confidence("confidence", 0))

	r2, err := llmjson.Parse(`{"confidence": -0.2}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r2.Confidence("confidence", 0))
}

func TestResult_IntCoercesNumericString(t *testing.T) {
	r, err := llmjson.Parse(`{"frontMatterEndLine": "42"}`)
	require.NoError(t, err)
	assert.Equal(t, 42, r.Int("frontMatterEndLine", -1))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, llmjson.Clamp01(-1))
	assert.Equal(t, 1.0, llmjson.Clamp01(2))
	assert.Equal(t, 0.5, llmjson.Clamp01(0.5))
}
