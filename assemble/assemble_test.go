package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/pipectx"
)

func TestRenderMetadataBlock_YAML(t *testing.T) {
	m := pipectx.Metadata{Title: "The Book", Author: "Jane Doe"}
	out, err := RenderMetadataBlock(m, config.MetadataFormatYAML)
	assert.NoError(t, err)
	assert.Contains(t, out, "title: The Book")
	assert.Contains(t, out, "author: Jane Doe")
	assert.Contains(t, out, "---\ntitle:")
}

func TestRenderMetadataBlock_JSON(t *testing.T) {
	m := pipectx.Metadata{Title: "The Book"}
	out, err := RenderMetadataBlock(m, config.MetadataFormatJSON)
	assert.NoError(t, err)
	assert.Contains(t, out, `"title": "The Book"`)
	assert.Contains(t, out, "```json")
}

func TestRenderMetadataBlock_Markdown(t *testing.T) {
	m := pipectx.Metadata{Title: "The Book", Author: "Jane Doe"}
	out, err := RenderMetadataBlock(m, config.MetadataFormatMarkdown)
	assert.NoError(t, err)
	assert.Contains(t, out, "**Title:** The Book")
	assert.Contains(t, out, "**Author:** Jane Doe")
}

func TestRenderMetadataBlock_EmptyMetadataRendersNothing(t *testing.T) {
	out, err := RenderMetadataBlock(pipectx.Metadata{}, config.MetadataFormatYAML)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestInsertChapterMarkers_InsertedBeforeHeadingNeverOnIt(t *testing.T) {
	lines := []string{"intro line", "# Chapter One", "body text"}
	chapters := []pipectx.ChapterHint{{Name: "Chapter One", StartLine: 1, Confidence: 0.9}}
	out := InsertChapterMarkers(lines, chapters, config.ChapterMarkerHTMLComment)
	assert.Equal(t, "intro line", out[0])
	assert.Equal(t, "<!-- chapter: Chapter One -->", out[1])
	assert.Equal(t, "", out[2])
	assert.Equal(t, "# Chapter One", out[3])
}

func TestInsertChapterMarkers_NoneStyleLeavesLinesUntouched(t *testing.T) {
	lines := []string{"a", "# Chapter One", "b"}
	chapters := []pipectx.ChapterHint{{Name: "Chapter One", StartLine: 1}}
	out := InsertChapterMarkers(lines, chapters, config.ChapterMarkerNone)
	assert.Equal(t, lines, out)
}

func TestRenderEndMarker_Styles(t *testing.T) {
	assert.Empty(t, RenderEndMarker(config.EndMarkerNone))
	assert.Equal(t, "⟦END⟧", RenderEndMarker(config.EndMarkerToken))
	assert.Contains(t, RenderEndMarker(config.EndMarkerStandard), "End of cleaned document")
}

func TestAssemble_FullDocument(t *testing.T) {
	lines := []string{"# Chapter One", "Body text here."}
	meta := pipectx.Metadata{Title: "My Book", Author: "A. Writer"}
	cfg := config.New(config.PresetDefault)
	res, err := Assemble(lines, meta, nil, cfg)
	assert.NoError(t, err)
	assert.Contains(t, res.Text, "title: My Book")
	assert.Contains(t, res.Text, "# My Book")
	assert.Contains(t, res.Text, "Body text here.")
	assert.True(t, res.Inserted > 0)
}

func TestAssemble_NoMetadataNoTitle(t *testing.T) {
	lines := []string{"plain text"}
	cfg := config.New(config.PresetMinimal)
	cfg.EndMarkerStyle = config.EndMarkerNone
	res, err := Assemble(lines, pipectx.Metadata{}, nil, cfg)
	assert.NoError(t, err)
	assert.Equal(t, "plain text", res.Text)
	assert.Equal(t, 0, res.Inserted)
}
