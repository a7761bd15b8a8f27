// Package promptstore defines the injected prompt-template capability and
// an in-memory implementation for embedders that keep their templates as
// plain Go strings rather than files.
//
// Rendering is built on Go's text/template rather than a bespoke
// mini-language.
package promptstore

import (
	"fmt"
	"text/template"

	pkgstrings "github.com/Tangerg/cleanforge/pkg/strings"
)

// Name is a prompt template identifier. The closed set below is exactly
// the phases that issue an LLM call.
type Name string

const (
	StructureAnalysisV1     Name = "structureAnalysis_v1"
	ContentTypeDetectionV1  Name = "contentTypeDetection_v1"
	PatternDetectionV1      Name = "patternDetection_v1"
	FrontMatterBoundaryV1   Name = "frontMatterBoundary_v1"
	BackMatterBoundaryV1    Name = "backMatterBoundary_v1"
	ParagraphReflowV1       Name = "paragraphReflow_v1"
	ParagraphOptimizationV1 Name = "paragraphOptimization_v1"
	FinalReviewV1           Name = "finalReview_v1"
)

// allNames is the closed set; a name outside it is always a configuration
// error.
var allNames = map[Name]bool{
	StructureAnalysisV1:     true,
	ContentTypeDetectionV1:  true,
	PatternDetectionV1:      true,
	FrontMatterBoundaryV1:   true,
	BackMatterBoundaryV1:    true,
	ParagraphReflowV1:       true,
	ParagraphOptimizationV1: true,
	FinalReviewV1:           true,
}

// ConfigError is returned for a missing template, the one class of prompt
// failure that must fail the run immediately rather than being recorded and
// skipped.
type ConfigError struct {
	Name Name
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("promptstore: missing template %q", e.Name)
}

// Store renders a named template against a variable set.
type Store interface {
	Render(name Name, variables map[string]any) (string, error)
}

// MemoryStore is a Store backed by an insert-only map of template bodies:
// once a name is registered, re-registering it is a no-op.
type MemoryStore struct {
	bodies map[Name]string
}

// NewMemoryStore builds an empty MemoryStore. Use Register to load
// templates before the first Render call.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bodies: make(map[Name]string)}
}

// Register validates and inserts body under name. name must be one of the
// closed set of template names; any other value is rejected so a typo
// cannot silently create an unreachable template. Subsequent calls with the
// same name are ignored (insert-only cache).
func (m *MemoryStore) Register(name Name, body string) error {
	if !allNames[name] {
		return fmt.Errorf("promptstore: unrecognised template name %q", name)
	}
	if _, exists := m.bodies[name]; exists {
		return nil
	}
	if _, err := template.New(string(name)).Parse(body); err != nil {
		return fmt.Errorf("promptstore: parse %q: %w", name, err)
	}
	m.bodies[name] = body
	return nil
}

// Render renders the named template with variables. A missing template is a
// *ConfigError so callers can fail the run immediately.
func (m *MemoryStore) Render(name Name, variables map[string]any) (string, error) {
	body, ok := m.bodies[name]
	if !ok {
		return "", &ConfigError{Name: name}
	}
	tt := pkgstrings.NewTextTemplate()
	if err := tt.ExecuteMap(body, variables); err != nil {
		return "", fmt.Errorf("promptstore: render %q: %w", name, err)
	}
	return tt.Render(), nil
}
