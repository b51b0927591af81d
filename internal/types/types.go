// Package types defines the data structures shared across repoloader packages.
package types

// FileEntry is one file selected by the tree walker.
type FileEntry struct {
	// RelativePath is the forward-slash path relative to the scan root.
	RelativePath string
	// Path is the scan path joined with RelativePath; it is written into the document.
	Path string
}

// DocumentSummary captures aggregate information about a written document.
type DocumentSummary struct {
	OutputPath string
	TotalFiles int
	TotalBytes int64
	Tokens     int
	Model      string
}

// LoadRequest describes a single repository serialization run.
type LoadRequest struct {
	// ScanPath is the directory whose files are serialized, as given by the user.
	ScanPath string
	// OutputPath is the destination document.
	OutputPath string
	// PreamblePath names a file whose contents replace the default preamble; empty keeps the default.
	PreamblePath string
	// SecondaryIgnoreFile is the tool ignore file; empty disables it.
	SecondaryIgnoreFile string
	// SkipGitignore disables the repository .gitignore.
	SkipGitignore bool
}
