package assemble

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Tangerg/cleanforge/config"
	"github.com/Tangerg/cleanforge/pipectx"
)

// metadataDoc is the field order the yaml and json renderings share; a
// plain map would let encoding/json and yaml.v3 reorder keys
// alphabetically, which neither format requires but both readers expect
// to look like hand-authored front matter.
type metadataDoc struct {
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle    string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	Publisher   string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	PublishDate string `yaml:"publishDate,omitempty" json:"publishDate,omitempty"`
	ISBN        string `yaml:"isbn,omitempty" json:"isbn,omitempty"`
	Language    string `yaml:"language,omitempty" json:"language,omitempty"`
	Genre       string `yaml:"genre,omitempty" json:"genre,omitempty"`
	Series      string `yaml:"series,omitempty" json:"series,omitempty"`
	Edition     string `yaml:"edition,omitempty" json:"edition,omitempty"`
}

func toMetadataDoc(m pipectx.Metadata) metadataDoc {
	return metadataDoc{
		Title: m.Title, Subtitle: m.Subtitle, Author: m.Author, Publisher: m.Publisher,
		PublishDate: m.PublishDate, ISBN: m.ISBN, Language: m.Language, Genre: m.Genre,
		Series: m.Series, Edition: m.Edition,
	}
}

// RenderMetadataBlock renders m in the given format, wrapped the way each
// format conventionally appears at the top of a Markdown document: a
// `---`-delimited front-matter block for yaml, a fenced code block for
// json, and a "- **Label:** value" bullet list for markdown. An empty Metadata renders
// an empty string (nothing to prepend).
func RenderMetadataBlock(m pipectx.Metadata, format config.MetadataFormat) (string, error) {
	if m == (pipectx.Metadata{}) {
		return "", nil
	}
	doc := toMetadataDoc(m)

	switch format {
	case config.MetadataFormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("assemble: marshal metadata json: %w", err)
		}
		return "```json\n" + string(b) + "\n```", nil

	case config.MetadataFormatMarkdown:
		return renderMetadataMarkdown(doc), nil

	default: // config.MetadataFormatYAML
		b, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("assemble: marshal metadata yaml: %w", err)
		}
		return "---\n" + string(b) + "---", nil
	}
}

func renderMetadataMarkdown(doc metadataDoc) string {
	var b strings.Builder
	write := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", label, value)
	}
	write("Title", doc.Title)
	write("Subtitle", doc.Subtitle)
	write("Author", doc.Author)
	write("Publisher", doc.Publisher)
	write("Publish date", doc.PublishDate)
	write("ISBN", doc.ISBN)
	write("Language", doc.Language)
	write("Genre", doc.Genre)
	write("Series", doc.Series)
	write("Edition", doc.Edition)
	return strings.TrimRight(b.String(), "\n")
}
