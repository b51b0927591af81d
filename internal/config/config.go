// Package config loads ignore files into rule sets and reads application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/repoloader/internal/ignore"
)

const commentPrefix = "#"

// IgnoreSources names the ignore files consulted for a run. An empty path
// disables that source.
type IgnoreSources struct {
	// PrimaryFilePath is the repository-level ignore file, usually <root>/.gitignore.
	PrimaryFilePath string
	// SecondaryFilePath is the tool-level ignore file.
	SecondaryFilePath string
}

// LoadIgnoreFilePatterns reads ignoreFilePath and returns its patterns. Blank
// lines and lines starting with '#' are skipped and surrounding whitespace is
// trimmed. A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadIgnoreFileRules reads ignoreFilePath and compiles its patterns.
func LoadIgnoreFileRules(ignoreFilePath string) (ignore.RuleSet, error) {
	if ignoreFilePath == "" {
		return nil, nil
	}
	patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		return nil, fmt.Errorf("loading ignore file %s: %w", ignoreFilePath, loadError)
	}
	return ignore.CompileRules(patterns), nil
}

// LoadIgnoreRules combines the rules of both sources, primary first.
func LoadIgnoreRules(sources IgnoreSources) (ignore.RuleSet, error) {
	primaryRules, primaryError := LoadIgnoreFileRules(sources.PrimaryFilePath)
	if primaryError != nil {
		return nil, primaryError
	}
	secondaryRules, secondaryError := LoadIgnoreFileRules(sources.SecondaryFilePath)
	if secondaryError != nil {
		return nil, secondaryError
	}
	combinedRules := make(ignore.RuleSet, 0, len(primaryRules)+len(secondaryRules))
	combinedRules = append(combinedRules, primaryRules...)
	combinedRules = append(combinedRules, secondaryRules...)
	return combinedRules, nil
}
