// Package minimize flattens source text into a dense single-line form.
//
// The rules run in a fixed order: whitespace is collapsed first, then
// comments and angle-bracket tags are stripped. Because the text is already a
// single line when comments are removed, a '#', '//' or '<...>' that appears
// inside ordinary content (a URL, a shell redirect, a generic type) removes
// everything after it. Output is meant for context density, not round trips.
package minimize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)

	commentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`#.*`),
		regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`),
	}

	tagPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<[^>]+>`),
	}
)

// Text minimizes text: collapse whitespace, strip comments, strip tags, then
// tidy whitespace left behind by the removals.
func Text(text string) string {
	minimized := CollapseWhitespace(text)
	minimized = StripComments(minimized)
	minimized = StripTags(minimized)
	return CollapseWhitespace(minimized)
}

// CollapseWhitespace trims every line and joins all whitespace runs,
// newlines included, into single spaces.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// StripComments removes '#' and '//' comments to end of line and non-greedy
// '/* ... */' blocks.
func StripComments(text string) string {
	return removeMatches(text, commentPatterns)
}

// StripTags removes every '<...>' tag.
func StripTags(text string) string {
	return removeMatches(text, tagPatterns)
}

func removeMatches(text string, patterns []*regexp.Regexp) string {
	for _, pattern := range patterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return text
}
