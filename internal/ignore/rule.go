// Package ignore translates gitignore-style glob lines into compiled exclusion rules.
package ignore

import (
	"regexp"
	"strings"
)

const (
	pathSeparator = "/"
	// GitDirectoryName is the version-control metadata directory that is always excluded.
	GitDirectoryName = ".git"

	anchoredPrefix     = "^"
	segmentPrefix      = "(?:^|/)"
	directorySuffix    = ".*"
	optionalTailSuffix = "(?:/.*)?$"
	doubleStarRegex    = ".+"
	singleStarRegex    = "[^/]*"
	singleCharRegex    = "."
)

// Rule is one compiled ignore pattern.
type Rule struct {
	Pattern string
	matcher *regexp.Regexp
}

// Matches reports whether relativePath is excluded by the rule.
// Directory paths are expected to carry a trailing slash.
func (rule Rule) Matches(relativePath string) bool {
	if rule.matcher == nil {
		return false
	}
	return rule.matcher.MatchString(relativePath)
}

// Expression returns the regular expression the pattern was translated into.
func (rule Rule) Expression() string {
	if rule.matcher == nil {
		return ""
	}
	return rule.matcher.String()
}

// CompileRule translates a single glob line into a Rule. It never fails: a
// translation that does not compile falls back to a literal match of the line.
func CompileRule(pattern string) Rule {
	expression := TranslatePattern(pattern)
	compiled, compileError := regexp.Compile(expression)
	if compileError != nil {
		compiled = regexp.MustCompile(segmentPrefix + regexp.QuoteMeta(pattern) + optionalTailSuffix)
	}
	return Rule{Pattern: pattern, matcher: compiled}
}

// ExactPathRule matches one relative path exactly, with no glob expansion.
func ExactPathRule(relativePath string) Rule {
	return Rule{
		Pattern: relativePath,
		matcher: regexp.MustCompile(anchoredPrefix + regexp.QuoteMeta(relativePath) + "$"),
	}
}

// TranslatePattern converts a gitignore-style glob into an unanchored regular
// expression searched against forward-slash relative paths.
func TranslatePattern(pattern string) string {
	body := pattern
	prefix := segmentPrefix
	if strings.HasPrefix(body, pathSeparator) {
		prefix = anchoredPrefix
		body = strings.TrimPrefix(body, pathSeparator)
	}

	var suffix string
	switch {
	case strings.HasSuffix(body, pathSeparator):
		suffix = directorySuffix
	case strings.HasSuffix(body, "/*"):
		body = strings.TrimSuffix(body, "/*")
		suffix = optionalTailSuffix
	default:
		suffix = optionalTailSuffix
	}

	return prefix + translateGlob(body) + suffix
}

// translateGlob rewrites wildcards and escapes every other character.
func translateGlob(glob string) string {
	var builder strings.Builder
	runes := []rune(glob)
	for index := 0; index < len(runes); index++ {
		current := runes[index]
		switch current {
		case '*':
			if index+1 < len(runes) && runes[index+1] == '*' {
				for index+1 < len(runes) && runes[index+1] == '*' {
					index++
				}
				builder.WriteString(doubleStarRegex)
				continue
			}
			builder.WriteString(singleStarRegex)
		case '?':
			builder.WriteString(singleCharRegex)
		case '[':
			classEnd := closingBracketIndex(runes, index)
			if classEnd < 0 {
				builder.WriteString(regexp.QuoteMeta(string(current)))
				continue
			}
			builder.WriteString(translateCharacterClass(runes[index+1 : classEnd]))
			index = classEnd
		default:
			builder.WriteString(regexp.QuoteMeta(string(current)))
		}
	}
	return builder.String()
}

func closingBracketIndex(runes []rune, openIndex int) int {
	start := openIndex + 1
	if start < len(runes) && (runes[start] == '!' || runes[start] == '^') {
		start++
	}
	// a leading ']' is a literal member of the class
	if start < len(runes) && runes[start] == ']' {
		start++
	}
	for index := start; index < len(runes); index++ {
		if runes[index] == ']' {
			return index
		}
	}
	return -1
}

func translateCharacterClass(members []rune) string {
	var builder strings.Builder
	builder.WriteString("[")
	if len(members) > 0 && (members[0] == '!' || members[0] == '^') {
		builder.WriteString("^")
		members = members[1:]
	}
	for _, member := range members {
		switch member {
		case '\\', '[', ']':
			builder.WriteString(`\`)
		}
		builder.WriteRune(member)
	}
	builder.WriteString("]")
	return builder.String()
}
