// Package llmjson parses the loosely-structured JSON an LLM returns.
//
// It strips code fences, locates the outermost {...}, coerces numeric
// strings, clamps confidences to [0,1], and repairs trailing commas. gjson
// and sjson do the structural work; this package adds the repair and
// coercion passes LLM output needs around them.
package llmjson

import (
	"errors"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	pkgstrings "github.com/Tangerg/cleanforge/pkg/strings"
)

var (
	codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingComma  = regexp.MustCompile(`,(\s*[}\]])`)
	ErrNoJSONFound = errors.New("llmjson: no JSON object found in response")
)

// Extract strips Markdown code fences (if present) and returns the
// outermost balanced {...} substring of raw, repairing trailing commas
// along the way.
func Extract(raw string) (string, error) {
	body := raw
	if m := codeFenceRegex.FindStringSubmatch(raw); m != nil {
		body = m[1]
	}

	start := strings.IndexByte(body, '{')
	if start < 0 {
		return "", ErrNoJSONFound
	}

	depth := 0
	inString := false
	escaped := false
	end := -1
	for i := start; i < len(body); i++ {
		c := body[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return "", ErrNoJSONFound
	}

	candidate := body[start : end+1]
	candidate = trailingComma.ReplaceAllString(candidate, "$1")
	return candidate, nil
}

// Result is a thin handle over a parsed JSON object offering the coercions
// callers need when reading an LLM's parsed response.
type Result struct {
	raw string
}

// Parse extracts and wraps the outermost JSON object in raw.
func Parse(raw string) (*Result, error) {
	candidate, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(candidate) {
		// One more repair attempt: a dangling trailing comma survives
		// nested-object removal in some model outputs.
		candidate = trailingComma.ReplaceAllString(candidate, "$1")
		if !gjson.Valid(candidate) {
			return nil, errors.New("llmjson: invalid JSON after repair")
		}
	}
	return &Result{raw: candidate}, nil
}

// String returns the string at path, or def if absent. Models
// occasionally wrap a string value in its own redundant quote pair
// ("\"Some Title\""); that accidental wrapping is stripped before return.
func (r *Result) String(path, def string) string {
	v := gjson.Get(r.raw, path)
	if !v.Exists() {
		return def
	}
	return pkgstrings.UnQuote(v.String())
}

// Float coerces the value at path to a float64, accepting both a JSON
// number and a numeric string ("0.8").
func (r *Result) Float(path string, def float64) float64 {
	v := gjson.Get(r.raw, path)
	if !v.Exists() {
		return def
	}
	if v.Type == gjson.String {
		f, err := cast.ToFloat64E(v.String())
		if err != nil {
			return def
		}
		return f
	}
	return v.Float()
}

// Confidence reads a confidence field at path and clamps it to [0,1], the
// clamping every parsed confidence value needs.
func (r *Result) Confidence(path string, def float64) float64 {
	return Clamp01(r.Float(path, def))
}

// Int coerces the value at path to an int, accepting numeric strings.
func (r *Result) Int(path string, def int) int {
	v := gjson.Get(r.raw, path)
	if !v.Exists() {
		return def
	}
	if v.Type == gjson.String {
		i, err := cast.ToIntE(v.String())
		if err != nil {
			return def
		}
		return i
	}
	return int(v.Int())
}

// Bool reads a boolean field at path.
func (r *Result) Bool(path string, def bool) bool {
	v := gjson.Get(r.raw, path)
	if !v.Exists() {
		return def
	}
	return v.Bool()
}

// Array returns the raw JSON of each element of the array at path.
func (r *Result) Array(path string) []gjson.Result {
	return gjson.Get(r.raw, path).Array()
}

// Exists reports whether path is present in the parsed object.
func (r *Result) Exists(path string) bool {
	return gjson.Get(r.raw, path).Exists()
}

// Raw returns the repaired JSON text this Result wraps.
func (r *Result) Raw() string {
	return r.raw
}

// Clamp01 clamps f to the [0,1] interval, the valid range for a confidence
// value anywhere one is produced.
func Clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// SetNumericString rewrites a quoted numeric field ("confidence": "0.8") to
// an unquoted JSON number in raw, a repair some models need before their
// response is otherwise well-formed JSON (a stricter variant of the
// coercion Result.Float performs transparently; exposed for callers that
// want to persist the repaired text).
func SetNumericString(raw, path string) (string, error) {
	v := gjson.Get(raw, path)
	if !v.Exists() || v.Type != gjson.String {
		return raw, nil
	}
	f, err := cast.ToFloat64E(v.String())
	if err != nil {
		return raw, nil
	}
	return sjson.Set(raw, path, f)
}
