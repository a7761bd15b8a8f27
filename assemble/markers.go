package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/pipectx"
)

// headingLike recognises a Markdown ATX heading of level 1-3, the notion
// of "heading" a chapter marker is inserted ahead of; a bare all-caps or
// title line without '#' is not matched.
var headingLike = regexp.MustCompile(`^\s*#{1,3}\s+\S`)

// InsertChapterMarkers inserts a marker, rendered in style, on the line
// immediately preceding each chapter's detected heading line — never on
// the heading line itself. Chapters are processed last-to-first so
// earlier indices remain valid as insertions shift later lines down.
func InsertChapterMarkers(lines []string, chapters []pipectx.ChapterHint, style config.ChapterMarkerStyle) []string {
	if style == config.ChapterMarkerNone || len(chapters) == 0 {
		return lines
	}
	out := append([]string{}, lines...)
	for i := len(chapters) - 1; i >= 0; i-- {
		ch := chapters[i]
		if ch.StartLine < 0 || ch.StartLine > len(out) {
			continue
		}
		marker := renderChapterMarker(ch, style)
		insertAt := ch.StartLine
		out = append(out[:insertAt], append([]string{marker, ""}, out[insertAt:]...)...)
	}
	return out
}

func renderChapterMarker(ch pipectx.ChapterHint, style config.ChapterMarkerStyle) string {
	switch style {
	case config.ChapterMarkerHTMLComment:
		return fmt.Sprintf("<!-- chapter: %s -->", ch.Name)
	case config.ChapterMarkerMarkdownH1:
		return "# " + ch.Name
	case config.ChapterMarkerMarkdownH2:
		return "## " + ch.Name
	case config.ChapterMarkerToken:
		return fmt.Sprintf("⟦CHAPTER: %s⟧", ch.Name)
	default:
		return ""
	}
}

// IsHeadingLine reports whether line looks like a Markdown ATX heading,
// the condition InsertChapterMarkers relies on callers having already
// used to locate ch.StartLine in the first place.
func IsHeadingLine(line string) bool {
	return headingLike.MatchString(line)
}

// RenderEndMarker returns the end-of-document marker for style, or "" for
// EndMarkerNone.
func RenderEndMarker(style config.EndMarkerStyle) string {
	switch style {
	case config.EndMarkerMinimal:
		return "---"
	case config.EndMarkerSimple:
		return "*** End of document ***"
	case config.EndMarkerStandard:
		return "---\n\n*End of cleaned document.*"
	case config.EndMarkerHTMLComment:
		return "<!-- end of document -->"
	case config.EndMarkerToken:
		return "⟦END⟧"
	default: // config.EndMarkerNone
		return ""
	}
}

// TitleHeading renders the level-1 Markdown heading for m.Title, or ""
// when no title was extracted.
func TitleHeading(m pipectx.Metadata) string {
	title := strings.TrimSpace(m.Title)
	if title == "" {
		return ""
	}
	return "# " + title
}
