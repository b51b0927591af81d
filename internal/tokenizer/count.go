package tokenizer

import (
	"errors"
	"fmt"

	"github.com/temirov/repoloader/internal/minimize"
)

var errNilCounter = errors.New("nil tokenizer counter")

// CountText estimates tokens for text using counter.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(text)
}

// CountFile reads the document at path and estimates its token count.
// Ill-formed UTF-8 is replaced before counting.
func CountFile(counter Counter, path string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	text, readErr := minimize.ReadText(path)
	if readErr != nil {
		return 0, fmt.Errorf("read %s for token counting: %w", path, readErr)
	}
	return CountText(counter, text)
}
