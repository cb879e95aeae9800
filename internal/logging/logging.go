// Package logging builds the zap logger shared by the front ends.
//
// The interactive menu clears the screen between prompts, so logs go to a
// file instead of the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the default log file name, created beside the executable.
const FileName = "ytdl.log"

// New builds a development-style logger appending to path. Debug entries are
// only recorded when verbose is set. An empty path logs to stderr.
func New(path string, verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true

	if !verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		config.OutputPaths = []string{path}
		config.ErrorOutputPaths = []string{path}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}
