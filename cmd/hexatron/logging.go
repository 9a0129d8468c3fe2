package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// setupLogger builds the stderr logger. debug wins over the configured level.
func setupLogger(w io.Writer, level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// setupSignalHandler returns a context cancelled on interrupt signals.
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
