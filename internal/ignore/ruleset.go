package ignore

import "strings"

// RuleSet is an ordered collection of rules with match-any semantics.
type RuleSet []Rule

// CompileRules translates every pattern, preserving order.
func CompileRules(patterns []string) RuleSet {
	rules := make(RuleSet, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, CompileRule(pattern))
	}
	return rules
}

// Patterns returns the source glob lines of the rule set.
func (rules RuleSet) Patterns() []string {
	patterns := make([]string, 0, len(rules))
	for _, rule := range rules {
		patterns = append(patterns, rule.Pattern)
	}
	return patterns
}

// Matches reports whether any rule matches relativePath.
func (rules RuleSet) Matches(relativePath string) bool {
	for _, rule := range rules {
		if rule.Matches(relativePath) {
			return true
		}
	}
	return false
}

// ShouldIgnore reports whether relativePath is excluded: it lies inside the
// version-control metadata directory or matches at least one rule. Paths use
// forward slashes and directories carry a trailing slash.
func (rules RuleSet) ShouldIgnore(relativePath string) bool {
	if IsVersionControlPath(relativePath) {
		return true
	}
	return rules.Matches(relativePath)
}

// IsVersionControlPath reports whether relativePath names the .git directory
// or anything beneath it.
func IsVersionControlPath(relativePath string) bool {
	trimmedPath := strings.TrimSuffix(relativePath, pathSeparator)
	if trimmedPath == GitDirectoryName || strings.HasPrefix(trimmedPath, GitDirectoryName+pathSeparator) {
		return true
	}
	return strings.Contains(relativePath, pathSeparator+GitDirectoryName+pathSeparator) ||
		strings.HasSuffix(trimmedPath, pathSeparator+GitDirectoryName)
}
