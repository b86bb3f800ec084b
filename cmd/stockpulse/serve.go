package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StockPulse/internal/controller"
	"StockPulse/internal/notifier"
	"StockPulse/internal/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the digest scheduler and the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	log.Println("[INFO] StockPulse starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	col := newCollector(cfg)
	n := newNotifier(cfg)
	rec := newRecorder(cfg)
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, n, rec, cfg.Watchlist)
	if err := sched.RegisterAll(cfg.Schedule.DigestCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn, ok := n.(*notifier.TelegramNotifier); ok {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending digest now")
		go sched.RunDigestNow()
	}

	mux := http.NewServeMux()
	controller.NewStockController(col, rec, cfg.StreamInterval()).Routes(mux)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Println("[INFO] shutdown signal received, stopping...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] StockPulse stopped")
	return nil
}

func digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Build and send the watchlist digest once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rec := newRecorder(cfg)
			defer rec.Close()

			sched := scheduler.NewScheduler(cmd.Context(), newCollector(cfg), newNotifier(cfg), rec, cfg.Watchlist)
			runID := sched.RunDigestNow()
			log.Printf("[INFO] digest %s done", runID)
			return nil
		},
	}
}
