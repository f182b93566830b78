package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mergington/activities/internal/loadgen"
	"github.com/mergington/activities/pkg/logger"
)

// Default configuration constants.
const (
	defaultParticipants = 1000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:8000", "Base URL of the service")
		participants = flag.Int("participants", defaultParticipants, "Number of synthetic participants")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		only         = flag.String("activity", "", "Only target this activity")
		domain       = flag.String("domain", loadgen.DefaultEmailDomain, "Email domain of generated participants")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile   = flag.String("output", "", "Write a JSON report of the run to this file")
		logFile      = flag.String("log", "", "Also write log output to this file")
		verbose      = flag.Bool("verbose", false, "Log every rejected request")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp(os.Stdout)
		return
	}

	closer, err := loadgen.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	runner, err := loadgen.NewRunner(&loadgen.Config{
		BaseURL:      *baseURL,
		Participants: *participants,
		Workers:      *workers,
		Activity:     *only,
		EmailDomain:  *domain,
		Timeout:      *timeout,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	})
	if err != nil {
		os.Stderr.WriteString("Invalid configuration: " + err.Error() + "\n")
		os.Exit(2)
	}

	if _, err := runner.Run(ctx); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		stop()
		os.Exit(1)
	}
}
