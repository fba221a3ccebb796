package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/warpcheck/config"
	"github.com/lixenwraith/warpcheck/logging"
)

const (
	logDir      = "logs"
	logFileName = "warpcheck.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging installs the slog default for a command
// With debug the log goes to a rotated file under logDir and the file is returned.
// Otherwise a terminal UI discards logs and other commands write to stderr.
func setupLogging(cfg config.LogConfig, debug, tui bool) *os.File {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	if !debug {
		var w io.Writer = os.Stderr
		if tui {
			w = io.Discard
		}
		logging.Init(level, cfg.Format, w)
		return nil
	}

	f, err := openLogFile()
	if err != nil {
		logging.Init(level, cfg.Format, io.Discard)
		if !tui {
			fmt.Fprintf(os.Stderr, "debug log unavailable: %v\n", err)
		}
		return nil
	}
	logging.Init(slog.LevelDebug, cfg.Format, f)
	return f
}

// openLogFile creates logDir, rotates an oversized log and opens it for append
func openLogFile() (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("warpcheck-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
