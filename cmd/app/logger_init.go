package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fortunaspin/fortuna/internal/config"
	"github.com/fortunaspin/fortuna/internal/logger"
)

// initLogger initializes the logger using centralized app configuration.
// Output goes to stdout plus a timestamped session file when the log
// directory is usable. Returns the file handle for the caller to close;
// nil when file logging is unavailable.
func initLogger(cfg *config.Config) *os.File {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	var w io.Writer
	logFile, err := logger.OpenSessionFile(cfg.LogDir)
	if err == nil {
		w = io.MultiWriter(os.Stdout, logFile)
	}

	logger.Init(loggerConfig, w)

	if err != nil {
		slog.Warn("File logging disabled", "error", err, "dir", cfg.LogDir)
	}
	return logFile
}
