// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoloader/internal/config"
	"github.com/temirov/repoloader/internal/output"
	"github.com/temirov/repoloader/internal/services/clipboard"
	"github.com/temirov/repoloader/internal/services/loader"
	"github.com/temirov/repoloader/internal/services/repository"
	"github.com/temirov/repoloader/internal/tokenizer"
	"github.com/temirov/repoloader/internal/types"
	"github.com/temirov/repoloader/internal/utils"
)

const (
	preambleFlagName    = "preamble"
	preambleShorthand   = "p"
	outputFlagName      = "output"
	outputShorthand     = "o"
	ignoreFileFlagName  = "ignore-file"
	ignoreFileShorthand = "i"
	noGitignoreFlagName = "no-gitignore"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	clipboardFlagName   = "clipboard"
	configFlagName      = "config"
	verboseFlagName     = "verbose"
	versionFlagName     = "version"
	initConfigFlagName  = "init-config"
	forceFlagName       = "force"

	rootUse              = "repoloader <path>"
	rootShortDescription = "serialize a Git repository into a single text document"
	rootLongDescription  = `repoloader walks the files under <path>, skips everything excluded by the
repository .gitignore and the tool ignore file, minimizes each file's text and
writes the result into one delimited document suitable as language model context.`
	rootUsageExample = `  # Serialize the current repository into output.txt
  repoloader .

  # Use a custom preamble and output location
  repoloader ./service -p preamble.txt -o /tmp/service.txt

  # Report the token count and copy the document to the clipboard
  repoloader . --tokens --clipboard`

	preambleFlagDescription    = "file whose contents replace the default preamble"
	outputFlagDescription      = "output document path"
	ignoreFileFlagDescription  = "tool ignore file (default: " + utils.ToolIgnoreFileName + " next to the executable)"
	noGitignoreFlagDescription = "do not use the repository .gitignore"
	tokensFlagDescription      = "count tokens of the written document"
	modelFlagDescription       = "tokenizer model to use for token counting"
	clipboardFlagDescription   = "copy the written document to the clipboard"
	configFlagDescription      = "configuration file (default: " + utils.LocalConfigFileName + " overlaid on ~/" + utils.GlobalConfigDirectoryName + "/" + utils.GlobalConfigFileName + ")"
	verboseFlagDescription     = "enable debug logging"
	versionFlagDescription     = "display application version"
	initConfigFlagDescription  = "write a default configuration file (local or global) and exit"
	forceFlagDescription       = "overwrite an existing configuration file with --init-config"

	versionTemplate             = "repoloader version: %s\n"
	writtenMessageFormat        = "Repository contents written to %s.\n"
	configWrittenMessageFormat  = "Configuration written to %s.\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	configurationErrorFormat    = "load configuration: %w"
	tokenCountErrorFormat       = "count tokens of %s: %w"
	requiredArgumentCount       = 1
)

var (
	// ErrUsage marks invalid command line usage.
	ErrUsage = errors.New("usage error")
	// ErrMissingPath is returned when the repository path argument is absent.
	ErrMissingPath = fmt.Errorf("%w: missing repository path", ErrUsage)
)

// Exit statuses reported by ExitCode.
const (
	ExitSuccess       = 0
	ExitFailure       = 1
	ExitUsage         = 2
	ExitNotRepository = 3
)

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, repository.ErrNotRepository):
		return ExitNotRepository
	default:
		return ExitFailure
	}
}

// dependencies holds the collaborators a run needs; tests replace them.
type dependencies struct {
	logger           *zap.Logger
	level            *zap.AtomicLevel
	resolver         repository.RootResolver
	copier           clipboard.Copier
	newCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	executablePath   func() (string, error)
	workingDirectory func() (string, error)
	stdout           io.Writer
}

func defaultDependencies(logger *zap.Logger, level zap.AtomicLevel) dependencies {
	return dependencies{
		logger:           logger,
		level:            &level,
		resolver:         repository.NewGitRootResolver(),
		copier:           clipboard.NewService(),
		newCounter:       tokenizer.NewCounter,
		executablePath:   os.Executable,
		workingDirectory: os.Getwd,
		stdout:           os.Stdout,
	}
}

// Execute runs the repoloader application. The logger's level follows
// level, which --verbose lowers to debug.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	rootCommand := createRootCommand(defaultDependencies(logger, level))
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// flagOptions stores the raw command line flag values.
type flagOptions struct {
	preamblePath     string
	outputPath       string
	ignoreFilePath   string
	disableGitignore bool
	tokensEnabled    bool
	tokenModel       string
	clipboard        bool
	configPath       string
	verbose          bool
	showVersion      bool
	initConfig       string
	force            bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var options flagOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if options.showVersion || options.initConfig != "" {
				return nil
			}
			if len(arguments) != requiredArgumentCount {
				_ = command.Usage()
				if len(arguments) == 0 {
					return ErrMissingPath
				}
				return fmt.Errorf("%w: expected exactly %d path, got %d", ErrUsage, requiredArgumentCount, len(arguments))
			}
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printErr := fmt.Fprintf(deps.stdout, versionTemplate, utils.GetApplicationVersion())
				return printErr
			}
			if options.initConfig != "" {
				return runInitConfig(options, deps)
			}
			if options.verbose && deps.level != nil {
				deps.level.SetLevel(zap.DebugLevel)
			}
			settings, settingsErr := resolveSettings(command, options, deps)
			if settingsErr != nil {
				return settingsErr
			}
			return runLoad(arguments[0], settings, deps)
		},
	}
	rootCommand.SetFlagErrorFunc(func(command *cobra.Command, flagErr error) error {
		_ = command.Usage()
		return fmt.Errorf("%w: %v", ErrUsage, flagErr)
	})

	flags := rootCommand.Flags()
	flags.StringVarP(&options.preamblePath, preambleFlagName, preambleShorthand, "", preambleFlagDescription)
	flags.StringVarP(&options.outputPath, outputFlagName, outputShorthand, utils.DefaultOutputFileName, outputFlagDescription)
	flags.StringVarP(&options.ignoreFilePath, ignoreFileFlagName, ignoreFileShorthand, "", ignoreFileFlagDescription)
	registerBooleanFlag(flags, &options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	registerBooleanFlag(flags, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	registerBooleanFlag(flags, &options.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)
	flags.StringVar(&options.initConfig, initConfigFlagName, "", initConfigFlagDescription)
	flags.BoolVar(&options.force, forceFlagName, false, forceFlagDescription)
	return rootCommand
}

// runInitConfig writes the configuration template selected by --init-config.
func runInitConfig(options flagOptions, deps dependencies) error {
	target, targetErr := config.ParseInitTarget(options.initConfig)
	if targetErr != nil {
		return fmt.Errorf("%w: %v", ErrUsage, targetErr)
	}
	workingDirectory, workingDirectoryErr := deps.workingDirectory()
	if workingDirectoryErr != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryErr)
	}
	path, initErr := config.InitializeConfiguration(config.InitOptions{
		Target:           target,
		Force:            options.force,
		WorkingDirectory: workingDirectory,
	})
	if initErr != nil {
		return initErr
	}
	_, printErr := fmt.Fprintf(deps.stdout, configWrittenMessageFormat, path)
	return printErr
}

// runSettings is the effective configuration of one run after flags,
// configuration files and defaults have been merged.
type runSettings struct {
	outputPath       string
	preamblePath     string
	ignoreFilePath   string
	skipGitignore    bool
	tokensEnabled    bool
	tokenModel       string
	clipboardEnabled bool
}

// resolveSettings applies flags over configuration over defaults. A flag
// only wins when it was set explicitly on the command line.
func resolveSettings(command *cobra.Command, options flagOptions, deps dependencies) (runSettings, error) {
	workingDirectory, workingDirectoryErr := deps.workingDirectory()
	if workingDirectoryErr != nil {
		return runSettings{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryErr)
	}
	applicationConfig, configErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configErr != nil {
		return runSettings{}, fmt.Errorf(configurationErrorFormat, configErr)
	}

	flags := command.Flags()
	settings := runSettings{
		outputPath:     firstNonEmpty(applicationConfig.Output, utils.DefaultOutputFileName),
		preamblePath:   applicationConfig.Preamble,
		ignoreFilePath: firstNonEmpty(applicationConfig.IgnoreFile, defaultIgnoreFilePath(deps.executablePath)),
		tokenModel:     firstNonEmpty(applicationConfig.Tokens.Model, tokenizer.DefaultModel),
	}
	if applicationConfig.UseGitignore != nil {
		settings.skipGitignore = !*applicationConfig.UseGitignore
	}
	if applicationConfig.Tokens.Enabled != nil {
		settings.tokensEnabled = *applicationConfig.Tokens.Enabled
	}
	if applicationConfig.Clipboard != nil {
		settings.clipboardEnabled = *applicationConfig.Clipboard
	}

	if flags.Changed(outputFlagName) {
		settings.outputPath = options.outputPath
	}
	if flags.Changed(preambleFlagName) {
		settings.preamblePath = options.preamblePath
	}
	if flags.Changed(ignoreFileFlagName) {
		settings.ignoreFilePath = options.ignoreFilePath
	}
	if flags.Changed(noGitignoreFlagName) {
		settings.skipGitignore = options.disableGitignore
	}
	if flags.Changed(tokensFlagName) {
		settings.tokensEnabled = options.tokensEnabled
	}
	if flags.Changed(modelFlagName) {
		settings.tokenModel = options.tokenModel
	}
	if flags.Changed(clipboardFlagName) {
		settings.clipboardEnabled = options.clipboard
	}
	return settings, nil
}

// defaultIgnoreFilePath locates the tool ignore file next to the executable.
func defaultIgnoreFilePath(executablePath func() (string, error)) string {
	if executablePath == nil {
		return ""
	}
	executable, executableErr := executablePath()
	if executableErr != nil || executable == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(executable), utils.ToolIgnoreFileName)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// runLoad serializes scanPath and performs the post-write reporting.
func runLoad(scanPath string, settings runSettings, deps dependencies) error {
	logger := deps.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	service := loader.NewService(deps.resolver, logger)
	summary, loadErr := service.Load(types.LoadRequest{
		ScanPath:            scanPath,
		OutputPath:          settings.outputPath,
		PreamblePath:        settings.preamblePath,
		SecondaryIgnoreFile: settings.ignoreFilePath,
		SkipGitignore:       settings.skipGitignore,
	})
	if loadErr != nil {
		return loadErr
	}
	if _, printErr := fmt.Fprintf(deps.stdout, writtenMessageFormat, settings.outputPath); printErr != nil {
		return printErr
	}

	if settings.tokensEnabled {
		counter, model, counterErr := deps.newCounter(tokenizer.Config{Model: settings.tokenModel})
		if counterErr != nil {
			return counterErr
		}
		tokens, countErr := tokenizer.CountFile(counter, settings.outputPath)
		if countErr != nil {
			return fmt.Errorf(tokenCountErrorFormat, settings.outputPath, countErr)
		}
		summary.Tokens = tokens
		summary.Model = model
	}
	logger.Info(output.FormatSummaryLine(summary))

	if settings.clipboardEnabled {
		if copyErr := clipboard.CopyFile(deps.copier, settings.outputPath); copyErr != nil {
			return copyErr
		}
		logger.Info("document copied to clipboard", zap.String("output", settings.outputPath))
	}
	return nil
}
