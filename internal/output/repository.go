package output

import (
	"io"

	"github.com/temirov/repoloader/internal/commands"
	"github.com/temirov/repoloader/internal/ignore"
	"github.com/temirov/repoloader/internal/minimize"
	"github.com/temirov/repoloader/internal/types"
)

// WriteRepository writes the complete document for scanPath to destination:
// the preamble, one record per selected file read and minimized as it is
// visited, then the terminator. The first read or write failure aborts.
func WriteRepository(destination io.Writer, preamble string, scanPath string, rules ignore.RuleSet) (types.DocumentSummary, error) {
	document := NewDocumentWriter(destination)
	if err := document.WritePreamble(preamble); err != nil {
		return document.Summary(), err
	}

	walkError := commands.WalkRepository(scanPath, rules, func(entry types.FileEntry) error {
		text, readError := minimize.ReadText(entry.Path)
		if readError != nil {
			return readError
		}
		return document.WriteRecord(entry.Path, minimize.Text(text))
	})
	if walkError != nil {
		return document.Summary(), walkError
	}

	if err := document.Close(); err != nil {
		return document.Summary(), err
	}
	return document.Summary(), nil
}
