package ignore_test

import (
	"testing"

	"github.com/temirov/repoloader/internal/ignore"
)

func TestCompileRuleMatching(t *testing.T) {
	testCases := []struct {
		name      string
		pattern   string
		matching  []string
		excluding []string
	}{
		{
			name:      "plain segment anywhere",
			pattern:   "build",
			matching:  []string{"build", "build/", "src/build", "src/build/", "src/build/x"},
			excluding: []string{"builder", "src/builder", "rebuild", "build.go"},
		},
		{
			name:      "anchored at root",
			pattern:   "/dist",
			matching:  []string{"dist", "dist/", "dist/app.js"},
			excluding: []string{"src/dist", "src/dist/", "distribution"},
		},
		{
			name:      "trailing slash directory",
			pattern:   "node_modules/",
			matching:  []string{"node_modules/", "node_modules/index.js", "web/node_modules/", "web/node_modules/pkg/a.js"},
			excluding: []string{"node_modules", "node_modules_backup/"},
		},
		{
			name:      "trailing slash star",
			pattern:   "logs/*",
			matching:  []string{"logs", "logs/", "logs/today.txt", "app/logs/old/a.txt"},
			excluding: []string{"logsheet", "catalogs/"},
		},
		{
			name:      "extension wildcard",
			pattern:   "*.log",
			matching:  []string{"a.log", "sub/c.log", "deep/er/trace.log"},
			excluding: []string{"b.txt", "alog", "a.logger"},
		},
		{
			name:      "nested path anywhere",
			pattern:   "subdir/.clasp.json",
			matching:  []string{"subdir/.clasp.json", "other/subdir/.clasp.json"},
			excluding: []string{"subdir/xclasp.json", "subdir"},
		},
		{
			name:      "question mark",
			pattern:   "file?.txt",
			matching:  []string{"file1.txt", "dir/fileA.txt"},
			excluding: []string{"file.txt", "file12.txt"},
		},
		{
			name:      "double star spans segments",
			pattern:   "docs/**/draft.md",
			matching:  []string{"docs/a/draft.md", "docs/a/b/draft.md"},
			excluding: []string{"docs/draft.md"},
		},
		{
			name:      "character class",
			pattern:   "v[0-9].txt",
			matching:  []string{"v1.txt", "notes/v7.txt"},
			excluding: []string{"vx.txt"},
		},
		{
			name:      "negated character class",
			pattern:   "tmp[!0-9]",
			matching:  []string{"tmpa"},
			excluding: []string{"tmp1"},
		},
		{
			name:      "dot is literal",
			pattern:   "a.b",
			matching:  []string{"a.b"},
			excluding: []string{"axb"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rule := ignore.CompileRule(testCase.pattern)
			for _, path := range testCase.matching {
				if !rule.Matches(path) {
					t.Errorf("pattern %q (%s) expected to match %q", testCase.pattern, rule.Expression(), path)
				}
			}
			for _, path := range testCase.excluding {
				if rule.Matches(path) {
					t.Errorf("pattern %q (%s) expected not to match %q", testCase.pattern, rule.Expression(), path)
				}
			}
		})
	}
}

func TestCompileRuleMalformedPatternDoesNotPanic(t *testing.T) {
	for _, pattern := range []string{"[z-a]", "[", "a[b", "**", "/", "(unbalanced"} {
		rule := ignore.CompileRule(pattern)
		if rule.Expression() == "" {
			t.Fatalf("pattern %q produced no matcher", pattern)
		}
	}
	if !ignore.CompileRule("(unbalanced").Matches("src/(unbalanced") {
		t.Fatalf("expected literal parentheses to match")
	}
}

func TestRuleSetShouldIgnore(t *testing.T) {
	rules := ignore.CompileRules([]string{"*.log", "/dist"})
	testCases := []struct {
		path     string
		expected bool
	}{
		{path: ".git/", expected: true},
		{path: ".git/config", expected: true},
		{path: "vendor/lib/.git/", expected: true},
		{path: "vendor/lib/.git/HEAD", expected: true},
		{path: ".github/", expected: false},
		{path: ".gitignore", expected: false},
		{path: "a.log", expected: true},
		{path: "dist/", expected: true},
		{path: "src/dist/", expected: false},
		{path: "main.go", expected: false},
	}
	for _, testCase := range testCases {
		if actual := rules.ShouldIgnore(testCase.path); actual != testCase.expected {
			t.Errorf("ShouldIgnore(%q) = %t, want %t", testCase.path, actual, testCase.expected)
		}
	}
	if got := rules.Patterns(); len(got) != 2 || got[0] != "*.log" || got[1] != "/dist" {
		t.Fatalf("unexpected patterns %v", got)
	}
}

func TestExactPathRule(t *testing.T) {
	rule := ignore.ExactPathRule("out/[draft]*.txt")
	if !rule.Matches("out/[draft]*.txt") {
		t.Fatalf("expected literal path to match")
	}
	for _, path := range []string{"out/d.txt", "x/out/[draft]*.txt", "out/[draft]*.txt.bak"} {
		if rule.Matches(path) {
			t.Fatalf("expected %q not to match", path)
		}
	}
}
