package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// Window sizes in calendar days; generated series have one point per day.
const (
	Window52w = 365
	Window30d = 30
)

// CalculateRange returns the high and low over the most recent window points.
func CalculateRange(series model.Series, window int) (high, low float64, err error) {
	if len(series) == 0 {
		return 0, 0, errors.New("no points provided")
	}
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	prices := series.Prices()
	start := len(prices) - window
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range prices[start:] {
		high = math.Max(high, p)
		low = math.Min(low, p)
	}
	return high, low, nil
}

// CalculatePosition returns where current sits within [low, high], 0.0~1.0.
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(math.Max(pos, 0), 1), nil
}
