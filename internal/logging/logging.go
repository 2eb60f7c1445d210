// Package logging configures the file-backed application logger. The TUI
// owns the terminal, so nothing may log to stdout or stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const logFile = "outboundly.log"

// New builds a zap logger writing to outboundly.log in configDir.
func New(configDir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	path := filepath.Join(configDir, logFile)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
