// Package output writes the delimited repository document.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/temirov/repoloader/internal/types"
	"github.com/temirov/repoloader/internal/utils"
)

const (
	// RecordDelimiter opens every file record.
	RecordDelimiter = "----"
	// DocumentTerminator ends the document; nothing follows it, not even a newline.
	DocumentTerminator = "--END--"
	// DefaultPreamble describes the document layout to its reader.
	DefaultPreamble = "The following text is a Git repository with code. The structure of the text are sections that begin with " +
		RecordDelimiter + ", followed by a single line containing the file path and file name, followed by a variable amount of lines " +
		"containing the file contents. The text representing the Git repository ends when the symbols " + DocumentTerminator +
		" are encountered. Any further text beyond " + DocumentTerminator +
		" are meant to be interpreted as instructions using the aforementioned Git repository as context."

	lineBreak = "\n"
)

// DocumentWriter streams a preamble, file records and the terminator to an
// underlying writer. Calls must follow that order; Close writes the terminator
// and flushes buffered output but does not close the destination.
type DocumentWriter struct {
	writer  *bufio.Writer
	summary types.DocumentSummary
	closed  bool
}

// NewDocumentWriter wraps destination in a buffered document writer.
func NewDocumentWriter(destination io.Writer) *DocumentWriter {
	return &DocumentWriter{writer: bufio.NewWriter(destination)}
}

// WritePreamble writes text followed by a line break.
func (document *DocumentWriter) WritePreamble(text string) error {
	return document.writeLines(text)
}

// WriteRecord writes one file record: delimiter, path and minimized content.
func (document *DocumentWriter) WriteRecord(path string, content string) error {
	if err := document.writeLines(RecordDelimiter, path, content); err != nil {
		return fmt.Errorf("write record for %s: %w", path, err)
	}
	document.summary.TotalFiles++
	document.summary.TotalBytes += int64(len(content))
	return nil
}

// Close appends the terminator and flushes. Calling Close twice is a no-op.
func (document *DocumentWriter) Close() error {
	if document.closed {
		return nil
	}
	document.closed = true
	if _, err := document.writer.WriteString(DocumentTerminator); err != nil {
		return fmt.Errorf("write terminator: %w", err)
	}
	if err := document.writer.Flush(); err != nil {
		return fmt.Errorf("flush document: %w", err)
	}
	return nil
}

// Summary reports the records written so far.
func (document *DocumentWriter) Summary() types.DocumentSummary {
	return document.summary
}

func (document *DocumentWriter) writeLines(lines ...string) error {
	if document.closed {
		return fmt.Errorf("document already terminated")
	}
	for _, line := range lines {
		if _, err := document.writer.WriteString(line + lineBreak); err != nil {
			return err
		}
	}
	return nil
}

// FormatSummaryLine renders a one-line description of a written document.
func FormatSummaryLine(summary types.DocumentSummary) string {
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	extra := ""
	if summary.Tokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.Tokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, utils.FormatFileSize(summary.TotalBytes), extra, modelSuffix)
}
