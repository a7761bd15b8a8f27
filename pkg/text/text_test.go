package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: []string{""},
		},
		{
			name:     "only tabs",
			input:    "\t\t\t",
			expected: []string{""},
		},
		{
			name:     "only newlines",
			input:    "\n\n\n",
			expected: []string{""},
		},
		{
			name:     "mixed whitespace",
			input:    " \t \n \t ",
			expected: []string{""},
		},
		{
			name:     "single line",
			input:    "Hello World",
			expected: []string{"Hello World"},
		},
		{
			name:     "single line with trailing newline",
			input:    "Hello World\n",
			expected: []string{"Hello World"},
		},
		{
			name:     "two lines",
			input:    "Line 1\nLine 2",
			expected: []string{"Line 1", "Line 2"},
		},
		{
			name:     "two lines with trailing newline",
			input:    "Line 1\nLine 2\n",
			expected: []string{"Line 1", "Line 2"},
		},
		{
			name:     "multiple lines",
			input:    "Line 1\nLine 2\nLine 3\nLine 4",
			expected: []string{"Line 1", "Line 2", "Line 3", "Line 4"},
		},
		{
			name:     "lines with CRLF",
			input:    "Line 1\r\nLine 2\r\nLine 3",
			expected: []string{"Line 1", "Line 2", "Line 3"},
		},
		{
			name:     "lines with CR only",
			input:    "Line 1\rLine 2\rLine 3",
			expected: []string{"Line 1\rLine 2\rLine 3"}, // CR alone doesn't split
		},
		{
			name:     "empty lines between content",
			input:    "Line 1\n\nLine 2",
			expected: []string{"Line 1", "", "Line 2"},
		},
		{
			name:     "multiple empty lines",
			input:    "Line 1\n\n\n\nLine 2",
			expected: []string{"Line 1", "", "", "", "Line 2"},
		},
		{
			name:     "lines with spaces",
			input:    "  Line 1  \n  Line 2  ",
			expected: []string{"  Line 1  ", "  Line 2  "},
		},
		{
			name:     "lines with tabs",
			input:    "\tLine 1\t\n\tLine 2\t",
			expected: []string{"\tLine 1\t", "\tLine 2\t"},
		},
		{
			name:     "unicode content",
			input:    "你好\n世界",
			expected: []string{"你好", "世界"},
		},
		{
			name:     "emoji content",
			input:    "😀\n🎉",
			expected: []string{"😀", "🎉"},
		},
		{
			name:     "very long line",
			input:    strings.Repeat("a", 10000) + "\n" + strings.Repeat("b", 10000),
			expected: []string{strings.Repeat("a", 10000), strings.Repeat("b", 10000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lines(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Lines() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestTrimAdjacentBlankLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   \n\t\n  ",
			expected: "",
		},
		{
			name:     "single line",
			input:    "Hello",
			expected: "Hello\n",
		},
		{
			name:     "two lines no blank between",
			input:    "Line 1\nLine 2",
			expected: "Line 1\nLine 2\n",
		},
		{
			name:     "two lines one blank between",
			input:    "Line 1\n\nLine 2",
			expected: "Line 1\n\nLine 2\n",
		},
		{
			name:     "two lines multiple blanks between",
			input:    "Line 1\n\n\n\nLine 2",
			expected: "Line 1\n\nLine 2\n",
		},
		{
			name:     "leading blank lines",
			input:    "\n\nLine 1\nLine 2",
			expected: "Line 1\nLine 2\n",
		},
		{
			name:     "trailing blank lines",
			input:    "Line 1\nLine 2\n\n\n",
			expected: "Line 1\nLine 2\n",
		},
		{
			name:     "leading and trailing blank lines",
			input:    "\n\nLine 1\nLine 2\n\n\n",
			expected: "Line 1\nLine 2\n",
		},
		{
			name:     "multiple paragraphs",
			input:    "Para 1\n\n\nPara 2\n\n\nPara 3",
			expected: "Para 1\n\nPara 2\n\nPara 3\n",
		},
		{
			name:     "blank lines with spaces",
			input:    "Line 1\n  \n\t\n   \nLine 2",
			expected: "Line 1\n\nLine 2\n",
		},
		{
			name:     "preserve single blank between paragraphs",
			input:    "Para 1 Line 1\nPara 1 Line 2\n\nPara 2 Line 1\nPara 2 Line 2",
			expected: "Para 1 Line 1\nPara 1 Line 2\n\nPara 2 Line 1\nPara 2 Line 2\n",
		},
		{
			name:     "complex document",
			input:    "\n\nTitle\n\n\n\nParagraph 1\nLine 2\n\n\n\nParagraph 2\n\n\n",
			expected: "Title\n\nParagraph 1\nLine 2\n\nParagraph 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimAdjacentBlankLines(tt.input)
			if result != tt.expected {
				t.Errorf("TrimAdjacentBlankLines() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func BenchmarkLines(b *testing.B) {
	text := "Line 1\nLine 2\nLine 3\nLine 4\nLine 5"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Lines(text)
	}
}

func BenchmarkTrimAdjacentBlankLines(b *testing.B) {
	text := "Line 1\n\n\nLine 2\n\n\nLine 3"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TrimAdjacentBlankLines(text)
	}
}
