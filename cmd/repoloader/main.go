package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/repoloader/internal/cli"
	"github.com/temirov/repoloader/internal/utils"
)

const syncInvalidArgumentFragment = "invalid argument"

// main is the entry point for the repoloader command.
func main() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(level)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}

	applicationExecutionError := cli.Execute(loggerInstance, level)
	if applicationExecutionError != nil {
		loggerInstance.Error(utils.ApplicationExecutionFailedMessage, zap.Error(applicationExecutionError))
	}
	syncLogger(loggerInstance)
	os.Exit(cli.ExitCode(applicationExecutionError))
}

// syncLogger flushes the logger when stderr can actually be synced; pipes
// and character devices other than terminals reject fsync.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil && !strings.Contains(strings.ToLower(syncErr.Error()), syncInvalidArgumentFragment) {
		fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
	}
}

func isRegularFile(file *os.File) bool {
	fileInfo, statErr := file.Stat()
	if statErr != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
