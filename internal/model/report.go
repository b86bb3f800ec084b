package model

import (
	"time"

	"StockPulse/internal/date"
)

// ForecastSummary describes the forecast at a fixed horizon relative to the
// last observed price.
type ForecastSummary struct {
	Horizon       int       `json:"horizon"`
	Date          date.Date `json:"date"`
	CurrentPrice  float64   `json:"current_price"`
	Predicted     float64   `json:"predicted"`
	ChangePercent float64   `json:"change_percent"`
	LowerBound    float64   `json:"lower_bound"`
	UpperBound    float64   `json:"upper_bound"`
}

// StockReport bundles everything the dashboard shows for one ticker.
type StockReport struct {
	Company     Company         `json:"company"`
	History     Series          `json:"history"`
	Forecast    Series          `json:"forecast"`
	Indicators  Indicators      `json:"indicators"`
	Summary     ForecastSummary `json:"summary"`
	Signal      SignalReport    `json:"signal"`
	GeneratedAt time.Time       `json:"generated_at"`
}
