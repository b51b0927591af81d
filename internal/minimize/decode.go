package minimize

import (
	"fmt"
	"os"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodeText interprets data as UTF-8, replacing ill-formed sequences with
// U+FFFD. It never fails on content.
func DecodeText(data []byte) (string, error) {
	decoded, _, transformError := transform.Bytes(runes.ReplaceIllFormed(), data)
	if transformError != nil {
		return "", fmt.Errorf("decode text: %w", transformError)
	}
	return string(decoded), nil
}

// ReadText reads the file at path and decodes it with DecodeText. Read
// failures are returned unchanged so callers can abort the run.
//
// #nosec G304
func ReadText(path string) (string, error) {
	data, readError := os.ReadFile(path)
	if readError != nil {
		return "", readError
	}
	return DecodeText(data)
}
