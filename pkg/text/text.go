package text

import (
	"strings"
)

// Lines splits the input text into separate lines.
// It returns:
// - An array with a single empty string if the input is empty or contains only whitespace
// - An array of strings representing each line in the original text otherwise
// Each line in the returned array does not include line terminators (\n, \r\n).
// Splitting is done directly rather than through bufio.Scanner, whose
// default token limit would silently truncate a line longer than 64KB.
func Lines(inputText string) []string {
	if strings.TrimSpace(inputText) == "" {
		return []string{""}
	}

	textLines := strings.Split(inputText, "\n")
	for i, currentLine := range textLines {
		textLines[i] = strings.TrimSuffix(currentLine, "\r")
	}
	if last := len(textLines) - 1; last > 0 && textLines[last] == "" {
		textLines = textLines[:last]
	}

	return textLines
}

// TrimAdjacentBlankLines removes consecutive blank lines from text while preserving paragraph structure.
// The function follows these rules:
//
//  1. If the current line is non-blank:
//     1.1. Check the previous line and if content has been seen before
//     1.1.1. If the previous line was blank AND we've already seen content before,
//     add exactly one blank line to preserve paragraph separation
//     1.1.2. If this is the first content line or follows another content line,
//     add the current line directly without a preceding blank line
//     1.2. Add the current non-blank line to the result
//     1.3. Set prevLineIsBlank flag to false and contentFlag to true
//
//  2. If the current line is blank:
//     2.1. Do not add it directly to the result
//     2.2. Set prevLineIsBlank flag to true to track consecutive blank lines
//
// This ensures that:
// - All leading blank lines are removed completely
// - Multiple consecutive blank lines between paragraphs are reduced to at most one blank line
// - Paragraph structure is maintained while removing excessive whitespace
// - No trailing blank lines are preserved
func TrimAdjacentBlankLines(inputText string) string {
	textLines := Lines(inputText)

	outputBuilder := strings.Builder{}
	previousLineIsBlank := true
	hasContentBeenSeen := false

	for _, currentLine := range textLines {
		currentLineIsBlank := strings.TrimSpace(currentLine) == ""

		if !currentLineIsBlank {
			// Add paragraph separator if needed
			if previousLineIsBlank && hasContentBeenSeen {
				outputBuilder.WriteString("\n")
			}

			// Add current line
			outputBuilder.WriteString(currentLine)
			outputBuilder.WriteString("\n")

			previousLineIsBlank = false
			hasContentBeenSeen = true
			continue
		}

		previousLineIsBlank = true
	}

	return outputBuilder.String()
}
