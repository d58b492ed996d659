package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/di"
	"github.com/mikey/spam-insight/internal/ports"
	"go.uber.org/zap"
)

func main() {
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server ports.Server,
	classifier core.Classifier,
	cacheRepo core.CacheRepository,
) error {
	defer logger.Sync()

	logger.Info("Classifier ready", zap.String("classifier", classifier.Name()))

	if err := server.Start(); err != nil {
		logger.Error("Failed to start server", zap.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}

	if stopper, ok := cacheRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
