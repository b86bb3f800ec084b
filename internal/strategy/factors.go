package strategy

import (
	"fmt"
	"math"

	"StockPulse/internal/model"
)

const (
	FactorMA200    = "MA200 deviation"
	FactorRSI      = "RSI(14)"
	Factor52w      = "52-week position"
	FactorTrend    = "Trend"
	FactorForecast = "Forecast drift"
)

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// scoreMA200Deviation rewards prices trading below their 200-day average.
// Weight: 0.30
func scoreMA200Deviation(ind *model.Indicators) model.FactorScore {
	if ind.MA200 == 0 {
		return factor(FactorMA200, 0, 0.30, "MA200 unavailable")
	}
	deviation := (ind.CurrentPrice - ind.MA200) / ind.MA200 * 100

	var score float64
	switch {
	case deviation <= -20:
		score = 2.0
	case deviation <= -10:
		score = 1.5
	case deviation <= -5:
		score = 1.0
	case deviation <= 0:
		score = 0.5
	case deviation <= 5:
		score = 0
	case deviation <= 10:
		score = -0.5
	case deviation <= 15:
		score = -1.0
	case deviation <= 20:
		score = -1.5
	default:
		score = -2.0
	}
	return factor(FactorMA200, score, 0.30, fmt.Sprintf("%+.1f%% from MA200", deviation))
}

// scoreRSI rewards oversold conditions.
// Weight: 0.25
func scoreRSI(ind *model.Indicators) model.FactorScore {
	rsi := ind.RSI
	var score float64
	switch {
	case rsi <= 25:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 1.0
	case rsi <= 45:
		score = 0.5
	case rsi <= 55:
		score = 0
	case rsi <= 60:
		score = -0.5
	case rsi <= 70:
		score = -1.0
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor(FactorRSI, score, 0.25, fmt.Sprintf("RSI=%.0f", rsi))
}

// score52WeekPosition rewards prices near the bottom of the 52-week range.
// Above 95% it gives -2 only when otherFactorsAvg < -1, otherwise -1.
// Weight: 0.15
func score52WeekPosition(ind *model.Indicators, otherFactorsAvg float64) model.FactorScore {
	pos := ind.Position52w * 100

	var score float64
	switch {
	case pos <= 10:
		score = 2.0
	case pos <= 20:
		score = 1.5
	case pos <= 30:
		score = 1.0
	case pos <= 40:
		score = 0.5
	case pos <= 60:
		score = 0
	case pos <= 70:
		score = -0.5
	case pos <= 80:
		score = -1.0
	case pos <= 95:
		score = -1.5
	default:
		if otherFactorsAvg < -1 {
			score = -2.0
		} else {
			score = -1.0
		}
	}
	return factor(Factor52w, score, 0.15, fmt.Sprintf("position=%.0f%%", pos))
}

// scoreTrendTracker follows moving-average alignment and 30-day extremes.
// Bull: price > MA20 > MA50. Bear: price < MA20 < MA50.
// Weight: 0.15
func scoreTrendTracker(ind *model.Indicators) model.FactorScore {
	bullish := ind.CurrentPrice > ind.MA20 && ind.MA20 > ind.MA50
	bearish := ind.CurrentPrice < ind.MA20 && ind.MA20 < ind.MA50

	near30dHigh := ind.High30d > 0 && math.Abs(ind.CurrentPrice-ind.High30d)/ind.High30d < 0.01
	near30dLow := ind.Low30d > 0 && math.Abs(ind.CurrentPrice-ind.Low30d)/ind.Low30d < 0.01

	switch {
	case bullish && near30dHigh:
		return factor(FactorTrend, 1.5, 0.15, "bullish alignment at 30-day high")
	case bullish:
		return factor(FactorTrend, 1.0, 0.15, "bullish alignment")
	case bearish && near30dLow:
		return factor(FactorTrend, -1.0, 0.15, "bearish alignment at 30-day low")
	case bearish:
		return factor(FactorTrend, -0.5, 0.15, "bearish alignment")
	default:
		return factor(FactorTrend, 0, 0.15, "range-bound")
	}
}

// scoreForecastDrift scores the expected move at the summary horizon.
// Weight: 0.15
func scoreForecastDrift(summary *model.ForecastSummary) model.FactorScore {
	if summary == nil || summary.Horizon == 0 {
		return factor(FactorForecast, 0, 0.15, "no forecast")
	}
	change := summary.ChangePercent

	var score float64
	switch {
	case change >= 10:
		score = 2.0
	case change >= 6:
		score = 1.0
	case change >= 2:
		score = 0.5
	case change >= -2:
		score = 0
	case change >= -6:
		score = -1.0
	default:
		score = -2.0
	}
	return factor(FactorForecast, score, 0.15, fmt.Sprintf("%+.2f%% in %dd", change, summary.Horizon))
}
