package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/catalog"
	"StockPulse/internal/chart"
	"StockPulse/internal/model"
	"StockPulse/internal/strategy"
	"StockPulse/internal/synth"
)

// SummaryHorizon is the forecast distance shown on the prediction panel.
const SummaryHorizon = 30

// ErrEmptyHistory is returned when a report is requested for a non-positive
// history length.
var ErrEmptyHistory = errors.New("history is empty")

// Collector runs history, forecast, indicators and scoring for catalog
// tickers.
type Collector struct {
	Source       Source
	HistoryDays  int
	ForecastDays int
	// Reproducible seeds forecasts by ticker and anchor date.
	Reproducible bool
}

// NewCollector creates a Collector with the default day counts.
func NewCollector(src Source) *Collector {
	return &Collector{
		Source:       src,
		HistoryDays:  synth.DefaultHistoryDays,
		ForecastDays: synth.DefaultForecastDays,
	}
}

// History looks the ticker up and generates its history.
func (c *Collector) History(ticker string, days int) (model.Company, model.Series, error) {
	company, err := catalog.Lookup(ticker)
	if err != nil {
		return model.Company{}, nil, fmt.Errorf("lookup %q: %w", ticker, err)
	}
	return company, c.Source.History(company.Ticker, days), nil
}

// Forecast continues history from its last point. An empty history yields an
// empty forecast.
func (c *Collector) Forecast(ticker string, history model.Series, days int) model.Series {
	last, ok := history.Last()
	if !ok {
		return model.Series{}
	}
	if c.Reproducible {
		return c.Source.SeededForecast(ticker, last.Price, last.Date, days)
	}
	return c.Source.Forecast(last.Price, last.Date, days)
}

// Chart returns the history and its forecast for a ticker.
func (c *Collector) Chart(ticker string, historyDays, forecastDays int) (model.Company, model.Series, model.Series, error) {
	company, history, err := c.History(ticker, historyDays)
	if err != nil {
		return model.Company{}, nil, nil, err
	}
	return company, history, c.Forecast(company.Ticker, history, forecastDays), nil
}

// Collect builds the full report for a ticker.
func (c *Collector) Collect(ticker string) (*model.StockReport, error) {
	company, history, forecast, err := c.Chart(ticker, c.HistoryDays, c.ForecastDays)
	if err != nil {
		return nil, err
	}
	last, ok := history.Last()
	if !ok {
		return nil, fmt.Errorf("collect %s: %w", company.Ticker, ErrEmptyHistory)
	}

	ind := Indicators(history)

	var summary model.ForecastSummary
	horizon := min(SummaryHorizon, len(forecast))
	if horizon > 0 {
		if summary, err = chart.Summarize(forecast, last.Price, horizon); err != nil {
			log.Printf("[WARN] %s forecast summary failed: %v", company.Ticker, err)
		}
	}

	return &model.StockReport{
		Company:     company,
		History:     history,
		Forecast:    forecast,
		Indicators:  ind,
		Summary:     summary,
		Signal:      strategy.Evaluate(&ind, &summary),
		GeneratedAt: time.Now(),
	}, nil
}

// CollectAll builds reports for every ticker concurrently, preserving order.
// Tickers that fail are logged and skipped.
func (c *Collector) CollectAll(tickers []string) []*model.StockReport {
	type result struct {
		index  int
		report *model.StockReport
		err    error
	}
	results := make(chan result)
	for i, ticker := range tickers {
		go func(i int, ticker string) {
			r, err := c.Collect(ticker)
			results <- result{index: i, report: r, err: err}
		}(i, ticker)
	}

	ordered := make([]*model.StockReport, len(tickers))
	for range tickers {
		r := <-results
		if r.err != nil {
			log.Printf("[WARN] collect %s: %v", tickers[r.index], r.err)
			continue
		}
		ordered[r.index] = r.report
	}

	reports := make([]*model.StockReport, 0, len(tickers))
	for _, r := range ordered {
		if r != nil {
			reports = append(reports, r)
		}
	}
	return reports
}

// Indicators computes every indicator over a history, falling back to
// neutral values where the history is too short.
func Indicators(history model.Series) model.Indicators {
	last, ok := history.Last()
	if !ok {
		return model.Indicators{}
	}
	currentPrice := last.Price
	ind := model.Indicators{CurrentPrice: currentPrice}

	ind.MA20 = movingAverage(history, 20, currentPrice)
	ind.MA50 = movingAverage(history, 50, currentPrice)
	ind.MA200 = movingAverage(history, 200, currentPrice)

	if rsi, err := calculator.CalculateRSI(history, 14); err != nil {
		log.Printf("[WARN] RSI calculation failed: %v, defaulting to 50", err)
		ind.RSI = 50
	} else {
		ind.RSI = rsi
	}

	if h, l, err := calculator.CalculateRange(history, calculator.Window52w); err != nil {
		log.Printf("[WARN] 52-week range calculation failed: %v", err)
		ind.High52w, ind.Low52w = currentPrice, currentPrice
	} else {
		ind.High52w, ind.Low52w = h, l
	}

	if h, l, err := calculator.CalculateRange(history, calculator.Window30d); err != nil {
		log.Printf("[WARN] 30-day range calculation failed: %v", err)
		ind.High30d, ind.Low30d = currentPrice, currentPrice
	} else {
		ind.High30d, ind.Low30d = h, l
	}

	if pos, err := calculator.CalculatePosition(currentPrice, ind.High52w, ind.Low52w); err != nil {
		log.Printf("[WARN] 52-week position calculation failed: %v", err)
		ind.Position52w = 0.5
	} else {
		ind.Position52w = pos
	}
	return ind
}

// movingAverage falls back to the current price when the history is shorter
// than the period.
func movingAverage(history model.Series, period int, fallback float64) float64 {
	ma, err := calculator.MovingAverage(history, period)
	if err != nil {
		return fallback
	}
	return ma
}
