package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"StockPulse/internal/catalog"
	"StockPulse/internal/collector"
	"StockPulse/internal/date"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
)

const (
	TriggerCron   = "CRON"
	TriggerManual = "MANUAL"
)

const helpText = "Available commands:\n• /digest\n• /quote TICKER\n• /companies [QUERY]"

// Scheduler runs the watchlist digest on a cron schedule and answers chat
// commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Watchlist []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, n notifier.Notifier, rec recorder.Recorder, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// RegisterAll registers the digest task.
func (s *Scheduler) RegisterAll(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, func() { s.runDigest(TriggerCron) }); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow builds and sends the digest immediately.
func (s *Scheduler) RunDigestNow() string {
	return s.runDigest(TriggerManual)
}

// runDigest returns the run id.
func (s *Scheduler) runDigest(trigger string) string {
	runID := uuid.NewString()
	log.Printf("[INFO] running digest %s (%s, %d tickers)", runID, trigger, len(s.Watchlist))

	reports := s.Collector.CollectAll(s.Watchlist)
	msg := notifier.FormatDigest(reports, date.Today())
	sent := s.trySend(msg)

	if err := s.Recorder.RecordDigest(&recorder.DigestRun{
		RunID:   runID,
		Trigger: trigger,
		Entries: recorder.EntriesFromReports(reports),
		Sent:    sent,
	}); err != nil {
		log.Printf("[ERROR] record digest: %v", err)
	}
	return runID
}

// HandleCommand answers a chat command.
func (s *Scheduler) HandleCommand(cmd notifier.Command) string {
	switch cmd.Name {
	case "/digest":
		s.RunDigestNow()
		return ""
	case "/quote":
		ticker := cmd.Arg(0)
		if ticker == "" {
			return "Usage: /quote TICKER"
		}
		report, err := s.Collector.Collect(ticker)
		if errors.Is(err, catalog.ErrUnknownTicker) {
			return fmt.Sprintf("Unknown ticker: %s", catalog.Normalize(ticker))
		}
		if err != nil {
			log.Printf("[ERROR] quote %s: %v", ticker, err)
			return "Quote unavailable, try again later."
		}
		return notifier.FormatStockReport(report)
	case "/companies":
		return notifier.FormatCompanies(catalog.Search(cmd.Arg(0))) + "\n" +
			notifier.FormatMarket(catalog.Analyze(catalog.All()))
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) bool {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
		return false
	}
	return true
}
