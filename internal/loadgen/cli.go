package loadgen

import (
	"fmt"
	"io"
	"os"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging sends log output to stdout and, when logFile is set, to that
// file as well.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		if err := logger.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		return io.NopCloser(nil), nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.InitWithWriter(io.MultiWriter(os.Stdout, file)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the load tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Mergington Signup Load Tool
===========================

Signs synthetic participants up concurrently, checks that every accepted
signup is listed exactly once, unregisters them and checks they are gone.

Usage:
  signup-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -participants int
        Number of synthetic participants (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -activity string
        Only target this activity (default: all activities)
  -domain string
        Email domain of generated participants (default "load.mergington.edu")
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write a JSON report of the run to this file
  -log string
        Also write log output to this file
  -verbose
        Log every rejected request
  -help
        Show this help message
`)
}
