package structural_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tangerg/cleanforge/document"
	"github.com/Tangerg/cleanforge/structural"
)

func buildDoc(total int, special map[int]string) *document.Document {
	lines := make([]string, total)
	for i := range lines {
		lines[i] = "plain narrative text with no special markers here"
	}
	for i, v := range special {
		lines[i] = v
	}
	return document.New(strings.Join(lines, "\n"))
}

func TestRemoveBackMatter_AppliesWhenApproved(t *testing.T) {
	doc := buildDoc(400, map[int]string{
		390: "BIBLIOGRAPHY", 392: "APPENDIX A", 395: "INDEX",
	})
	out, removal := structural.RemoveBackMatter(doc, 380, 0.80, nil)
	require.True(t, removal.Applied)
	assert.Equal(t, 380, len(out))
}

func TestRemoveBackMatter_RejectsPositionTooEarly(t *testing.T) {
	doc := buildDoc(400, nil)
	out, removal := structural.RemoveBackMatter(doc, 4, 0.80, nil)
	require.False(t, removal.Applied)
	assert.Equal(t, 400, len(out))
}

func TestRemoveFrontMatter_RejectsWhenChapterIndicatorPresent(t *testing.T) {
	doc := buildDoc(200, map[int]string{5: "Chapter 1"})
	out, removal := structural.RemoveFrontMatter(doc, 20, 0.80, nil)
	require.False(t, removal.Applied)
	assert.Equal(t, 200, len(out))
}

func TestRemoveTableOfContents_AppliesForEntryRun(t *testing.T) {
	doc := buildDoc(200, map[int]string{
		5:  "CONTENTS",
		6:  "Chapter One 1",
		7:  "Chapter Two 15",
		8:  "Chapter Three 33",
		9:  "Chapter Four 51",
		10: "Chapter Five 70",
	})
	out, removal := structural.RemoveTableOfContents(doc, 5, 11, 0.70, nil)
	require.True(t, removal.Applied)
	assert.Equal(t, 194, len(out))
}

func TestRemoveIndex_RejectsBeforeSixtyPercent(t *testing.T) {
	doc := buildDoc(200, nil)
	out, removal := structural.RemoveIndex(doc, 50, 80, 0.90, nil)
	require.False(t, removal.Applied)
	assert.Equal(t, 200, len(out))
}
