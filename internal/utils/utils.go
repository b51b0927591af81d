// Package utils contains general helper functions used across repoloader.
package utils

import (
	"path/filepath"
)

// File name constants used across the project.
const (
	// GitIgnoreFileName is the name of the repository-level ignore file.
	GitIgnoreFileName = ".gitignore"
	// ToolIgnoreFileName is the name of the tool-level ignore file kept next to the executable.
	ToolIgnoreFileName = ".gptignore"
	// DefaultOutputFileName is the document written when no output path is given.
	DefaultOutputFileName = "output.txt"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".repoloader"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".repoloader.yaml"
	// ConfigFileType is the format used for configuration files without an extension.
	ConfigFileType = "yaml"
)

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
