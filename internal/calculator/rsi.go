package calculator

import (
	"errors"

	"StockPulse/internal/model"
)

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Returns 50 when the series has fewer than period+1 points.
func CalculateRSI(series model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	closes := series.Prices()
	if len(closes) < period+1 {
		return 50.0, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
