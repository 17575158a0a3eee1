package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/backend"
	"spendlog/internal/cli"
	apphttp "spendlog/internal/http"
	"spendlog/internal/ledger"
	"spendlog/internal/services"
	gsheet "spendlog/internal/sheets/google"
	"spendlog/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Stdout, os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.ShutdownContext(context.Background(), logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}

	svc := services.NewLedgerService(ledger.New(result.Store), result.Publisher, closeFunc(result.Cleanup))

	var (
		sheets     apphttp.SheetsExporter
		syncWorker *worker.SyncWorker
	)
	if cfg.SheetsEnabled() {
		exporter, err := gsheet.NewExporter(ctx, gsheet.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		})
		if err != nil {
			// Export is optional.
			logger.Warn("Google Sheets export disabled", "error", err)
		} else {
			sheets = exporter
			logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
			if cfg.GoogleSheetsSyncInterval > 0 {
				syncWorker = worker.NewSyncWorker(svc.Ledger(), exporter, cfg.GoogleSheetsSyncInterval)
				sheets = syncWorker
			}
		}
	}

	srv := apphttp.NewServer(apphttp.ServerConfig{
		Addr:               ":" + cfg.Port,
		Location:           cfg.Location(),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SummaryCacheTTL:    cfg.SummaryCacheTTL,
		Sheets:             sheets,
		TrustedProxies:     cfg.TrustedProxies,
		Logger:             logger,
	}, svc)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting spendlog server", "port", cfg.Port, "backend", backendCfg.Type, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if syncWorker != nil {
		g.Go(func() error { return syncWorker.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		_ = svc.Close()
		os.Exit(1)
	}
	if err := svc.Close(); err != nil {
		logger.Error("Service close failed", "error", err)
	}
	logger.Info("Server stopped gracefully")
}

// closeFunc adapts a backend cleanup to io.Closer.
type closeFunc func() error

func (f closeFunc) Close() error {
	if f == nil {
		return nil
	}
	return f()
}
