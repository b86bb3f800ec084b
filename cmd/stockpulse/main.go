// stockpulse serves synthetic stock histories and forecasts.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/date"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/synth"
)

var (
	version    = "0.1.0"
	configPath string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:   "stockpulse",
		Short: "Synthetic stock history and forecast service",
		Long: `stockpulse generates deterministic per-ticker price histories and
forecasts with widening confidence bands, serves them over HTTP and
websocket, and sends a daily digest to Telegram.`,
		SilenceUsage: true,
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(digestCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	config.LoadEnv()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newCollector(cfg *config.Config) *collector.Collector {
	col := collector.NewCollector(synth.New())
	col.HistoryDays = cfg.Generator.HistoryDays
	col.ForecastDays = cfg.Generator.ForecastDays
	col.Reproducible = cfg.Generator.ReproducibleForecast
	return col
}

func newNotifier(cfg *config.Config) notifier.Notifier {
	if !cfg.TelegramEnabled() {
		log.Println("[WARN] telegram not configured, messages go to the log")
		return notifier.LogNotifier{}
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stockpulse version %s\n", version)
		},
	}
}

func historyCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history TICKER",
		Short: "Print a generated price history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Generator.HistoryDays
			}
			_, history, err := newCollector(cfg).History(args[0], days)
			if err != nil {
				return err
			}
			return printJSON(history)
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", synth.DefaultHistoryDays, "Number of days")
	return cmd
}

func forecastCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "forecast PRICE DATE",
		Short: "Print a forecast continuing PRICE from DATE (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse price: %w", err)
			}
			lastDate, err := date.Parse(args[1])
			if err != nil {
				return err
			}
			return printJSON(synth.GenerateForecast(price, lastDate, days))
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", synth.DefaultForecastDays, "Number of days")
	return cmd
}

func reportCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report TICKER",
		Short: "Print the indicator and signal report for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			report, err := newCollector(cfg).Collect(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(report)
			}
			fmt.Println(notifier.FormatStockReport(report))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}
