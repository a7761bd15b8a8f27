// Package config holds the recognised-option bag a pipeline run is
// configured with and the four presets that fill it.
package config

// MetadataFormat selects the serialisation of the metadata block the
// Assembler prepends.
type MetadataFormat string

const (
	MetadataFormatYAML     MetadataFormat = "yaml"
	MetadataFormatJSON     MetadataFormat = "json"
	MetadataFormatMarkdown MetadataFormat = "markdown"
)

// ChapterMarkerStyle selects how chapter boundaries are marked in the
// assembled output.
type ChapterMarkerStyle string

const (
	ChapterMarkerNone        ChapterMarkerStyle = "none"
	ChapterMarkerHTMLComment ChapterMarkerStyle = "htmlComment"
	ChapterMarkerMarkdownH1  ChapterMarkerStyle = "markdownH1"
	ChapterMarkerMarkdownH2  ChapterMarkerStyle = "markdownH2"
	ChapterMarkerToken       ChapterMarkerStyle = "tokenStyle"
)

// EndMarkerStyle selects the end-of-document marker the Assembler appends.
type EndMarkerStyle string

const (
	EndMarkerNone        EndMarkerStyle = "none"
	EndMarkerMinimal     EndMarkerStyle = "minimal"
	EndMarkerSimple      EndMarkerStyle = "simple"
	EndMarkerStandard    EndMarkerStyle = "standard"
	EndMarkerHTMLComment EndMarkerStyle = "htmlComment"
	EndMarkerToken       EndMarkerStyle = "token"
)

// Preset names one of the four canned option blocks.
type Preset string

const (
	PresetDefault   Preset = "default"
	PresetTraining  Preset = "training"
	PresetMinimal   Preset = "minimal"
	PresetScholarly Preset = "scholarly"
)

// Config is the recognised-option bag a run is configured with. Zero value
// is not a valid configuration; use New(PresetDefault) or one of the other
// presets and override fields as needed.
type Config struct {
	Preset Preset

	RemoveAuxiliaryLists    bool
	RemoveCitations         bool
	RemoveFootnotesEndnotes bool

	// MaxParagraphWords is the preset-dependent threshold Optimise (step 14)
	// splits at. Zero disables step 14 entirely.
	MaxParagraphWords int

	MetadataFormat      MetadataFormat
	ChapterMarkerStyle  ChapterMarkerStyle
	EndMarkerStyle      EndMarkerStyle
	ConfidenceThreshold float64

	RespectContentFlags bool
	PreserveCodeBlocks  bool
	PreserveMathSymbols bool

	// SelectedContentType is the caller's declared content type
	// ("fiction", "academic", ...). When set and reconnaissance detects a
	// different type, the mismatch is recorded as an advisory, never an
	// error. Empty means no selection was made.
	SelectedContentType string

	// UseEvolvedPipeline routes the run through this pipeline. false routes to
	// a legacy path that is out of scope and is therefore rejected by
	// orchestrator.Run rather than implemented.
	UseEvolvedPipeline bool

	// DryRun, when true, executes only Phase 0 (reconnaissance) and returns
	// its StructureHints/BoundaryResult without performing any removal or
	// rewriting. A zero-cost preview hook an embedder can use ahead of a full
	// run.
	DryRun bool
}

// New returns the Config for the given preset, setting the option blocks
// each preset is defined to carry.
func New(preset Preset) Config {
	switch preset {
	case PresetTraining:
		return Config{
			Preset:                  PresetTraining,
			RemoveAuxiliaryLists:    true,
			RemoveCitations:         true,
			RemoveFootnotesEndnotes: true,
			MaxParagraphWords:       200,
			MetadataFormat:          MetadataFormatYAML,
			ChapterMarkerStyle:      ChapterMarkerMarkdownH1,
			EndMarkerStyle:          EndMarkerStandard,
			ConfidenceThreshold:     0.75,
			RespectContentFlags:     true,
			PreserveCodeBlocks:      true,
			PreserveMathSymbols:     true,
			UseEvolvedPipeline:      true,
		}
	case PresetMinimal:
		return Config{
			Preset:                  PresetMinimal,
			RemoveAuxiliaryLists:    false,
			RemoveCitations:         false,
			RemoveFootnotesEndnotes: false,
			MaxParagraphWords:       0,
			MetadataFormat:          MetadataFormatMarkdown,
			ChapterMarkerStyle:      ChapterMarkerNone,
			EndMarkerStyle:          EndMarkerMinimal,
			ConfidenceThreshold:     0.75,
			RespectContentFlags:     true,
			PreserveCodeBlocks:      true,
			PreserveMathSymbols:     true,
			UseEvolvedPipeline:      true,
		}
	case PresetScholarly:
		return Config{
			Preset:                  PresetScholarly,
			RemoveAuxiliaryLists:    true,
			RemoveCitations:         false,
			RemoveFootnotesEndnotes: false,
			MaxParagraphWords:       250,
			MetadataFormat:          MetadataFormatYAML,
			ChapterMarkerStyle:      ChapterMarkerHTMLComment,
			EndMarkerStyle:          EndMarkerHTMLComment,
			ConfidenceThreshold:     0.75,
			RespectContentFlags:     true,
			PreserveCodeBlocks:      true,
			PreserveMathSymbols:     true,
			UseEvolvedPipeline:      true,
		}
	default:
		return Config{
			Preset:                  PresetDefault,
			RemoveAuxiliaryLists:    true,
			RemoveCitations:         true,
			RemoveFootnotesEndnotes: true,
			MaxParagraphWords:       300,
			MetadataFormat:          MetadataFormatYAML,
			ChapterMarkerStyle:      ChapterMarkerMarkdownH2,
			EndMarkerStyle:          EndMarkerSimple,
			ConfidenceThreshold:     0.75,
			RespectContentFlags:     true,
			PreserveCodeBlocks:      true,
			PreserveMathSymbols:     true,
			UseEvolvedPipeline:      true,
		}
	}
}
