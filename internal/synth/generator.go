// Package synth generates synthetic daily price histories and forecasts.
//
// Histories are a multiplicative random walk whose daily returns come from a
// sine hash seeded by the ticker, so the same ticker always walks the same way.
// Only the starting price is drawn from an unseeded source. Forecasts continue
// from the last historical point with an upward drift and a confidence band
// that widens by half a price unit per day.
package synth

import (
	"math/rand/v2"
	"time"

	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

const (
	// Volatility scales every daily return.
	Volatility = 0.02

	DefaultHistoryDays  = 365
	DefaultForecastDays = 30

	startPriceMin   = 50.0
	startPriceSpan  = 100.0
	historyCenter   = 0.5
	forecastCenter  = 0.4 // below 0.5, so forecasts drift upward
	confidenceSlope = 0.5
)

// Source supplies the unseeded uniform draws in [0, 1). A Source shared by
// concurrent callers must be safe for concurrent use.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Generator produces histories and forecasts. It keeps no state between
// calls and is safe for concurrent use when its Source is.
type Generator struct {
	src Source
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the unseeded random source.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithClock replaces the wall clock that anchors history windows.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator backed by math/rand/v2 and time.Now unless
// overridden.
func New(opts ...Option) *Generator {
	g := &Generator{src: globalSource{}, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the date history windows end before.
func (g *Generator) Today() date.Date { return date.Of(g.now()) }

var defaultGenerator = New()

// GenerateHistory is History on the default generator.
func GenerateHistory(ticker string, days int) model.Series {
	return defaultGenerator.History(ticker, days)
}

// GenerateForecast is Forecast on the default generator.
func GenerateForecast(lastPrice float64, lastDate date.Date, days int) model.Series {
	return defaultGenerator.Forecast(lastPrice, lastDate, days)
}
