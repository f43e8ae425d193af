package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/orangehat/meetcal/internal/seed"
	"github.com/orangehat/meetcal/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumEvents = 200
	defaultSpanDays  = 60
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 30 * time.Second
	defaultRunLimit  = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEvents = flag.Int("events", defaultNumEvents, "Number of events to generate and submit")
		spanDays  = flag.Int("span", defaultSpanDays, "Calendar span in days to scatter events over")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	config := &seed.Config{
		BaseURL:   *baseURL,
		NumEvents: *numEvents,
		SpanDays:  *spanDays,
		Workers:   *workers,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("seed run failed: " + err.Error() + "\n")
		return
	}
}
