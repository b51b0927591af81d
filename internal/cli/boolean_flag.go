package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName     = "bool"
	booleanFlagTrueLiteral  = "true"
	booleanFlagAcceptedList = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidLabel = "invalid boolean value"
	longFlagPrefix          = "--"
	shortFlagPrefix         = "-"
	flagValueSeparator      = "="
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue accepts yes/no/on/off spellings in addition to strconv's.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func parseBooleanLiteral(input string) (bool, bool) {
	parsed, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, known
}

func (value *booleanFlagValue) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = booleanFlagTrueLiteral
	}
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidLabel, input, value.flagKey, booleanFlagAcceptedList)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(defaultValue)
		registered.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value"
// for boolean flags followed by a boolean literal, since pflag only binds
// values to optional-value flags through '='. A literal is only joined while
// another positional argument remains, so "--no-gitignore 1" keeps 1 as the path.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	flags := command.Flags()
	booleanFlagNames := map[string]struct{}{}
	flags.VisitAll(func(flag *pflag.Flag) {
		if _, isLiteralFlag := flag.Value.(*booleanFlagValue); isLiteralFlag {
			booleanFlagNames[flag.Name] = struct{}{}
		}
	})

	positionalsRemaining := countPositionalArguments(flags, arguments)
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == longFlagPrefix {
			return append(normalized, arguments[index:]...)
		}
		if strings.HasPrefix(argument, longFlagPrefix) && !strings.Contains(argument, flagValueSeparator) && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(argument, longFlagPrefix)
			nextArgument := arguments[index+1]
			if _, isBoolean := booleanFlagNames[flagName]; isBoolean && positionalsRemaining > 1 {
				if _, known := parseBooleanLiteral(nextArgument); known {
					normalized = append(normalized, argument+flagValueSeparator+nextArgument)
					positionalsRemaining--
					index++
					continue
				}
			}
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

// countPositionalArguments counts the arguments pflag would leave as
// positionals, skipping the separate values of flags that require one.
func countPositionalArguments(flags *pflag.FlagSet, arguments []string) int {
	count := 0
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		switch {
		case argument == longFlagPrefix:
			return count + len(arguments) - index - 1
		case strings.HasPrefix(argument, longFlagPrefix):
			if strings.Contains(argument, flagValueSeparator) {
				continue
			}
			if flagTakesSeparateValue(flags.Lookup(strings.TrimPrefix(argument, longFlagPrefix))) {
				index++
			}
		case len(argument) > 1 && strings.HasPrefix(argument, shortFlagPrefix):
			if len(argument) == 2 && flagTakesSeparateValue(flags.ShorthandLookup(argument[1:])) {
				index++
			}
		default:
			count++
		}
	}
	return count
}

func flagTakesSeparateValue(flag *pflag.Flag) bool {
	return flag != nil && flag.NoOptDefVal == ""
}
