package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Log file retention settings
const (
	logFileTimestampFormat = "2006-01-02_15-04-05"
	logFileNamePattern     = "session_%s.log"
	logFileExtension       = ".log"
	logFileRetentionLimit  = 10
	logFileRetentionCount  = 9
)

// OpenSessionFile creates the log directory, prunes old session logs, and
// opens a fresh timestamped log file. The caller owns the returned handle.
func OpenSessionFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	cleanupLogs(dir)

	timestamp := time.Now().Format(logFileTimestampFormat)
	name := filepath.Join(dir, fmt.Sprintf(logFileNamePattern, timestamp))

	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logFile, nil
}

// cleanupLogs removes old session logs, keeping only the most recent ones.
// Directory entries are name-ordered, and the timestamped naming makes that
// chronological.
func cleanupLogs(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), logFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	if len(logFiles) >= logFileRetentionLimit {
		toDelete := len(logFiles) - logFileRetentionCount
		for i := 0; i < toDelete; i++ {
			if err := os.Remove(filepath.Join(dir, logFiles[i].Name())); err != nil {
				fmt.Printf("Failed to delete old log file %s: %v\n", logFiles[i].Name(), err)
			}
		}
	}
}
