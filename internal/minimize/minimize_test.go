package minimize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/repoloader/internal/minimize"
)

func TestText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "hash comment", input: "print(1) # hi\n", expected: "print(1)"},
		{name: "whitespace only", input: "  a \n\n\t b  \r\n c ", expected: "a b c"},
		{name: "line comment", input: "x := 1 // one\n", expected: "x := 1"},
		{name: "block comment spanning lines", input: "a /* one\ntwo */ b /* three */ c", expected: "a b c"},
		{name: "block comment is non greedy", input: "a /* x */ b /* y */ c", expected: "a b c"},
		{name: "tags", input: "<p>hello</p> <b>world</b>", expected: "hello world"},
		{name: "empty", input: "", expected: ""},
		{name: "no markers passes through collapsed", input: "func main() {\n\treturn\n}\n", expected: "func main() { return }"},
		// collapse runs before comment stripping, so a later line is swallowed by an earlier comment
		{name: "comment swallows joined lines", input: "a = 1 # note\nb = 2\n", expected: "a = 1"},
		{name: "url is treated as comment", input: "see https://example.com for docs", expected: "see https:"},
		{name: "generic treated as tag", input: "List<String> names", expected: "List names"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := minimize.Text(testCase.input); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestTextIsStableOnMinimizedInput(t *testing.T) {
	inputs := []string{
		"package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(1) // print\n}\n",
		"def f():\n    return 1  # one\n",
		"<html>\n  <body>text</body>\n</html>\n",
		"   \n\t\n",
	}
	for _, input := range inputs {
		once := minimize.Text(input)
		twice := minimize.Text(once)
		if once != twice {
			t.Fatalf("minimizing twice changed %q into %q", once, twice)
		}
	}
}

func TestDecodeTextReplacesInvalidBytes(t *testing.T) {
	decoded, err := minimize.DecodeText([]byte{'a', 0xff, 'b'})
	if err != nil {
		t.Fatalf("DecodeText error: %v", err)
	}
	if decoded != "a�b" {
		t.Fatalf("unexpected decoded text %q", decoded)
	}
}

func TestReadText(t *testing.T) {
	directory := t.TempDir()
	filePath := filepath.Join(directory, "mixed.txt")
	if err := os.WriteFile(filePath, []byte{'o', 'k', 0xc3, '\n'}, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	text, err := minimize.ReadText(filePath)
	if err != nil {
		t.Fatalf("ReadText error: %v", err)
	}
	if text != "ok�\n" {
		t.Fatalf("unexpected text %q", text)
	}

	if _, err := minimize.ReadText(filepath.Join(directory, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
