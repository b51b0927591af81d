package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/repoloader/internal/ignore"
	"github.com/temirov/repoloader/internal/types"
	"github.com/temirov/repoloader/internal/utils"
)

const (
	directoryMarker       = "/"
	errorAccessPathFormat = "error accessing path %s: %w"
)

// FileVisitor receives each FileEntry discovered during traversal.
type FileVisitor func(types.FileEntry) error

// WalkRepository walks scanPath depth-first in lexical order and invokes
// visitor for every file that survives ignore filtering. Excluded directories
// are pruned before descending. The scan root itself is never excluded. Any
// access error aborts the walk.
func WalkRepository(scanPath string, rules ignore.RuleSet, visitor FileVisitor) error {
	absoluteRootPath, absolutePathError := filepath.Abs(scanPath)
	if absolutePathError != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", scanPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	return filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if accessError != nil {
			return fmt.Errorf(errorAccessPathFormat, walkedPath, accessError)
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if rules.ShouldIgnore(relativePath + directoryMarker) {
				return filepath.SkipDir
			}
			return nil
		}
		if rules.ShouldIgnore(relativePath) {
			return nil
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 && isDirectoryLink(walkedPath) {
			return nil
		}

		if visitor == nil {
			return nil
		}
		return visitor(types.FileEntry{
			RelativePath: relativePath,
			Path:         filepath.Join(scanPath, filepath.FromSlash(relativePath)),
		})
	})
}

// isDirectoryLink reports whether a symbolic link resolves to a directory;
// such links are neither followed nor emitted as files.
func isDirectoryLink(linkPath string) bool {
	targetInfo, statError := os.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}
