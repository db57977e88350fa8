package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixurl/config"
	"pixurl/credentials"
	"pixurl/failures"
	"pixurl/images"
	"pixurl/issued"
	"pixurl/job"
	"pixurl/logger"
	"pixurl/presets"
	"pixurl/routes"
)

const (
	// recordMaxAge is how long issued URLs and failures are kept
	recordMaxAge = 30 * 24 * time.Hour
	// jobMaxAge is how long finished publish jobs stay visible on /status
	jobMaxAge = 24 * time.Hour
)

func main() {
	if err := config.LoadFile(""); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		logger.Warnf("%v, keeping debug level", err)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting pixurl server initialization")

	if err := os.MkdirAll(config.GetDataDir(), 0o755); err != nil {
		logger.Fatalf("Failed to create data directory: %v", err)
	}

	logger.Debug("Initializing credentials database")
	if err := credentials.OpenDB(config.GetCredentialsDBPath()); err != nil {
		logger.Fatalf("Failed to initialize credentials store: %v", err)
	}
	defer credentials.CloseDB()

	logger.Debug("Initializing failures database")
	if err := failures.Init(config.GetFailuresDBPath()); err != nil {
		logger.Fatalf("Failed to initialize failure store: %v", err)
	}
	defer failures.Close()

	logger.Debug("Initializing issued URL database")
	if err := issued.Init(config.GetIssuedDBPath()); err != nil {
		logger.Fatalf("Failed to initialize issued store: %v", err)
	}
	defer issued.Close()

	logger.Debug("Initializing presets database")
	if err := presets.Init(config.GetPresetsDBPath()); err != nil {
		logger.Fatalf("Failed to initialize preset store: %v", err)
	}
	defer presets.Close()
	logger.Info("Databases initialized successfully")

	opts := config.ThumborOptions()
	if opts.ServerURL == "" {
		logger.Warn("THUMBOR_SERVER_URL is not set; URLs will have no host")
	}
	if opts.SecurityKey == "" {
		logger.Warn("THUMBOR_SECURITY_KEY is not set; issuing unsafe URLs")
	}
	if config.GetJWTSecret() == nil {
		logger.Warn("PIXURL_JWT_SECRET is not set; endpoints are unauthenticated")
	}
	client := images.NewClient(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupRoutine(ctx)

	logger.Info("Starting publish job worker")
	go job.Run(ctx, client)

	mux := http.NewServeMux()
	routes.Register(mux, client)
	mux.Handle("/serve/", http.StripPrefix("/serve/", http.FileServer(http.Dir(config.GetDirectServeBaseDir()))))

	server := &http.Server{
		Addr:              config.GetListenAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("pixurl server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("Server failed: %v", err)
	}
}

// cleanupRoutine periodically removes old issued URL and failure records and
// finished publish jobs
func cleanupRoutine(ctx context.Context) {
	logger.Info("Cleanup routine started - will run every 24 hours")
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup routine stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup of old records")

			if n, err := issued.CleanupOldRecords(recordMaxAge); err != nil {
				logger.Errorf("Failed to cleanup old issued records: %v", err)
			} else {
				logger.Infof("Removed %d old issued records", n)
			}

			if n, err := failures.CleanupOldRecords(recordMaxAge); err != nil {
				logger.Errorf("Failed to cleanup old failure records: %v", err)
			} else {
				logger.Infof("Removed %d old failure records", n)
			}

			logger.Infof("Forgot %d finished publish jobs", job.PruneFinished(jobMaxAge))
		}
	}
}
