package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectedArgs []string
		expectError  bool
	}{
		{name: "defaults_to_false", arguments: []string{}, expected: false, expectedArgs: []string{}},
		{name: "sets_true_without_value", arguments: []string{"--feature"}, expected: true, expectedArgs: []string{}},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--feature=false"}, expected: false, expectedArgs: []string{}},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--feature", "no", "./repo"}, expected: false, expectedArgs: []string{"./repo"}},
		{name: "sets_true_with_on_literal", arguments: []string{"./repo", "--feature", "on"}, expected: true, expectedArgs: []string{"./repo"}},
		{name: "leaves_positional_path_alone", arguments: []string{"--feature", "./repo"}, expected: true, expectedArgs: []string{"./repo"}},
		{name: "keeps_literal_as_only_path", arguments: []string{"--feature", "1"}, expected: true, expectedArgs: []string{"1"}},
		{name: "skips_values_of_other_flags", arguments: []string{"--feature", "off", "-o", "out.txt"}, expected: true, expectedArgs: []string{"off"}},
		{name: "joins_with_path_after_value_flag", arguments: []string{"--feature", "off", "--output", "out.txt", "./repo"}, expected: false, expectedArgs: []string{"./repo"}},
		{name: "rejects_unknown_literal", arguments: []string{"--feature=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, "feature", testCase.defaultValue, "toggle feature")
			command.Flags().StringP("output", "o", "", "output path")
			parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
			if positional := command.Flags().Args(); !reflect.DeepEqual(positional, testCase.expectedArgs) {
				t.Fatalf("expected positional arguments %v, got %v", testCase.expectedArgs, positional)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsStopsAtTerminator(t *testing.T) {
	command := &cobra.Command{Use: "boolean-test"}
	var enabled bool
	registerBooleanFlag(command.Flags(), &enabled, "feature", false, "toggle feature")
	command.Flags().String("output", "", "output path")

	arguments := []string{"--output", "yes", "--", "--feature", "on"}
	normalized := normalizeBooleanFlagArguments(command, arguments)
	if !reflect.DeepEqual(normalized, arguments) {
		t.Fatalf("expected arguments unchanged, got %v", normalized)
	}
}
