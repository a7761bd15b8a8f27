// Package metatext implements Phase 1: extracting bibliographic metadata
// from the front-matter lines StructureHints identified, via a single LLM
// call returning a fixed JSON schema.
package metatext

import (
	"context"
	"strings"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/llmclient"
	"github.com/Tangerg/cleanforge/llmjson"
	"github.com/Tangerg/cleanforge/pipectx"
	"github.com/Tangerg/cleanforge/promptstore"
)

// Service bundles the injected capabilities metadata extraction needs.
type Service struct {
	Client  llmclient.Client
	Prompts promptstore.Store
}

// Extract isolates doc's lines [0, frontMatterEndLine), asks the LLM for
// the fixed metadata schema, and returns a Metadata with missing fields
// left blank. Unlike reconnaissance, a parse or call failure here returns
// a zero-value Metadata rather than a heuristic guess: there is no
// reliable deterministic source for bibliographic fields.
func (s Service) Extract(ctx context.Context, doc *document.Document, frontMatterEndLine int) (pipectx.Metadata, bool) {
	if s.Client == nil || s.Prompts == nil {
		return pipectx.Metadata{}, false
	}

	excerpt := strings.Join(doc.Slice(0, frontMatterEndLine), "\n")
	prompt, err := s.Prompts.Render(promptstore.ContentTypeDetectionV1, map[string]any{"excerpt": excerpt})
	if err != nil {
		return pipectx.Metadata{}, false
	}

	resp, err := llmclient.Call(ctx, s.Client, llmclient.Request{User: prompt, MaxTokens: 512})
	if err != nil {
		return pipectx.Metadata{}, false
	}

	parsed, err := llmjson.Parse(resp.Text)
	if err != nil {
		return pipectx.Metadata{}, false
	}

	meta := pipectx.Metadata{
		Title:       strings.TrimSpace(parsed.String("title", "")),
		Subtitle:    strings.TrimSpace(parsed.String("subtitle", "")),
		Author:      strings.TrimSpace(parsed.String("author", "")),
		Publisher:   strings.TrimSpace(parsed.String("publisher", "")),
		PublishDate: strings.TrimSpace(parsed.String("publishDate", "")),
		ISBN:        strings.TrimSpace(parsed.String("isbn", "")),
		Language:    strings.TrimSpace(parsed.String("language", "")),
		Genre:       strings.TrimSpace(parsed.String("genre", "")),
		Series:      strings.TrimSpace(parsed.String("series", "")),
		Edition:     strings.TrimSpace(parsed.String("edition", "")),
		ContentFlags: pipectx.ContentFlags{
			Poetry:   parsed.Bool("contentFlags.poetry", false),
			Dialogue: parsed.Bool("contentFlags.dialogue", false),
			Code:     parsed.Bool("contentFlags.code", false),
			Table:    parsed.Bool("contentFlags.table", false),
			Academic: parsed.Bool("contentFlags.academic", false),
		},
	}
	return meta, true
}
