// Package assemble implements Phase 7 (step 15): the purely deterministic
// assembly of the final artefact from the cleaned working text, the
// extracted metadata, and the configured presentation style.
package assemble

import (
	"strings"

	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/pipectx"
)

// Result is Assembly's outcome: the final text and the number of lines
// the assembler itself inserted (metadata block, title, chapter markers,
// end marker), the assemblerInsertions term PipelineResult's line-count
// invariant allows for.
type Result struct {
	Text     string
	Inserted int
}

// Assemble prepends a metadata block, a title heading, and chapter
// markers to lines, and appends an end marker, each per its configured
// style. Every insertion is deterministic; nothing here calls an LLM.
func Assemble(lines []string, meta pipectx.Metadata, chapters []pipectx.ChapterHint, cfg config.Config) (Result, error) {
	body := InsertChapterMarkers(lines, chapters, cfg.ChapterMarkerStyle)

	var header []string
	metaBlock, err := RenderMetadataBlock(meta, cfg.MetadataFormat)
	if err != nil {
		return Result{}, err
	}
	if metaBlock != "" {
		header = append(header, metaBlock, "")
	}
	if title := TitleHeading(meta); title != "" {
		header = append(header, title, "")
	}

	var footer []string
	if end := RenderEndMarker(cfg.EndMarkerStyle); end != "" {
		footer = append(footer, "", end)
	}

	inserted := len(header) + len(footer) + (len(body) - len(lines))

	parts := make([]string, 0, len(header)+len(body)+len(footer))
	parts = append(parts, header...)
	parts = append(parts, body...)
	parts = append(parts, footer...)

	return Result{Text: strings.Join(parts, "\n"), Inserted: inserted}, nil
}
