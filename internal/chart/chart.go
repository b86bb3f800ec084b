// Package chart assembles generated series into what the price chart and the
// forecast panel display.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"StockPulse/internal/date"
	"StockPulse/internal/model"
	"StockPulse/internal/synth"
)

var (
	ErrUnknownRange      = errors.New("unknown range")
	ErrHorizonOutOfRange = errors.New("horizon out of range")
)

// Range is a chart time window ending today.
type Range string

const (
	Range1M Range = "1M"
	Range6M Range = "6M"
	Range1Y Range = "1Y"

	DefaultRange = Range1Y
)

// ParseRange accepts 1M, 6M or 1Y in any case; empty means DefaultRange.
func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToUpper(strings.TrimSpace(s))); r {
	case "":
		return DefaultRange, nil
	case Range1M, Range6M, Range1Y:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
	}
}

// Cutoff returns the first date inside the window.
func (r Range) Cutoff(today date.Date) date.Date {
	switch r {
	case Range1M:
		return today.AddDate(0, -1, 0)
	case Range6M:
		return today.AddDate(0, -6, 0)
	default:
		return today.AddDate(-1, 0, 0)
	}
}

// Combine concatenates history and forecast into one chart series.
func Combine(history, forecast model.Series) model.Series {
	out := make(model.Series, 0, len(history)+len(forecast))
	out = append(out, history...)
	return append(out, forecast...)
}

// Filter keeps the points dated on or after the range cutoff. Forecast points
// always lie after today and are kept.
func Filter(points model.Series, r Range, today date.Date) model.Series {
	cutoff := r.Cutoff(today)
	out := make(model.Series, 0, len(points))
	for _, p := range points {
		if !p.Date.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// Summarize describes the forecast point horizon days out against the current
// price.
func Summarize(forecast model.Series, currentPrice float64, horizon int) (model.ForecastSummary, error) {
	if horizon < 1 || horizon > len(forecast) {
		return model.ForecastSummary{}, fmt.Errorf("%w: %d of %d", ErrHorizonOutOfRange, horizon, len(forecast))
	}
	p := forecast[horizon-1]

	var change float64
	if currentPrice != 0 {
		change = synth.Round2((p.Predicted - currentPrice) / currentPrice * 100)
	}
	return model.ForecastSummary{
		Horizon:       horizon,
		Date:          p.Date,
		CurrentPrice:  currentPrice,
		Predicted:     p.Predicted,
		ChangePercent: change,
		LowerBound:    p.LowerBound,
		UpperBound:    p.UpperBound,
	}, nil
}
