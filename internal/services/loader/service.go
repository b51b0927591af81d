// Package loader runs one repository serialization from scan path to document.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoloader/internal/config"
	"github.com/temirov/repoloader/internal/ignore"
	"github.com/temirov/repoloader/internal/minimize"
	"github.com/temirov/repoloader/internal/output"
	"github.com/temirov/repoloader/internal/services/repository"
	"github.com/temirov/repoloader/internal/types"
	"github.com/temirov/repoloader/internal/utils"
)

const parentDirectoryPrefix = ".."

// Service serializes repositories into documents.
type Service struct {
	resolver repository.RootResolver
	logger   *zap.Logger
}

// NewService constructs a Service. A nil logger discards log output.
func NewService(resolver repository.RootResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{resolver: resolver, logger: logger}
}

// Load writes the document described by request and returns its summary.
// The repository root, preamble and ignore rules are all resolved before the
// output file is created, so a failure there leaves no output behind.
func (service *Service) Load(request types.LoadRequest) (types.DocumentSummary, error) {
	if service.resolver == nil {
		return types.DocumentSummary{}, errors.New("nil repository root resolver")
	}
	repositoryRoot, rootErr := service.resolver.ResolveRoot(request.ScanPath)
	if rootErr != nil {
		return types.DocumentSummary{}, rootErr
	}
	service.logger.Debug("resolved repository root", zap.String("root", repositoryRoot))

	preamble, preambleErr := readPreamble(request.PreamblePath)
	if preambleErr != nil {
		return types.DocumentSummary{}, preambleErr
	}

	sources := config.IgnoreSources{SecondaryFilePath: request.SecondaryIgnoreFile}
	if !request.SkipGitignore {
		sources.PrimaryFilePath = filepath.Join(repositoryRoot, utils.GitIgnoreFileName)
	}
	rules, rulesErr := config.LoadIgnoreRules(sources)
	if rulesErr != nil {
		return types.DocumentSummary{}, rulesErr
	}
	service.logger.Debug("loaded ignore rules",
		zap.String("primary", sources.PrimaryFilePath),
		zap.String("secondary", sources.SecondaryFilePath),
		zap.Strings("patterns", rules.Patterns()))

	if outputRule, inside := outputExclusionRule(request.ScanPath, request.OutputPath); inside {
		service.logger.Debug("excluding output from document",
			zap.String("output", outputRule.Pattern),
			zap.String("expression", outputRule.Expression()))
		rules = append(rules, outputRule)
	}

	return service.writeDocument(request, preamble, rules)
}

// #nosec G304
func (service *Service) writeDocument(request types.LoadRequest, preamble string, rules ignore.RuleSet) (types.DocumentSummary, error) {
	file, createErr := os.Create(request.OutputPath)
	if createErr != nil {
		return types.DocumentSummary{}, fmt.Errorf("create output %s: %w", request.OutputPath, createErr)
	}

	summary, writeErr := output.WriteRepository(file, preamble, request.ScanPath, rules)
	closeErr := file.Close()
	summary.OutputPath = request.OutputPath
	if writeErr != nil {
		return summary, fmt.Errorf("write %s: %w", request.OutputPath, writeErr)
	}
	if closeErr != nil {
		return summary, fmt.Errorf("close output %s: %w", request.OutputPath, closeErr)
	}
	service.logger.Debug("document written",
		zap.String("output", request.OutputPath),
		zap.Int("files", summary.TotalFiles),
		zap.Int64("bytes", summary.TotalBytes))
	return summary, nil
}

func readPreamble(preamblePath string) (string, error) {
	if preamblePath == "" {
		return output.DefaultPreamble, nil
	}
	text, readErr := minimize.ReadText(preamblePath)
	if readErr != nil {
		return "", fmt.Errorf("read preamble %s: %w", preamblePath, readErr)
	}
	return text, nil
}

// outputExclusionRule keeps the document from being serialized into itself
// when it is written inside the scanned tree.
func outputExclusionRule(scanPath string, outputPath string) (ignore.Rule, bool) {
	absoluteScanPath, scanErr := filepath.Abs(scanPath)
	absoluteOutputPath, outputErr := filepath.Abs(outputPath)
	if scanErr != nil || outputErr != nil {
		return ignore.Rule{}, false
	}
	relativePath, relErr := filepath.Rel(absoluteScanPath, absoluteOutputPath)
	if relErr != nil || relativePath == "." || relativePath == parentDirectoryPrefix ||
		strings.HasPrefix(relativePath, parentDirectoryPrefix+string(filepath.Separator)) {
		return ignore.Rule{}, false
	}
	return ignore.ExactPathRule(filepath.ToSlash(relativePath)), true
}
