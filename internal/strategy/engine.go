package strategy

import "StockPulse/internal/model"

// Tiers maps a minimum total score to a signal, highest first.
var Tiers = []struct {
	MinScore float64
	Signal   model.Signal
}{
	{1.0, model.SignalStrongBuy},
	{0.4, model.SignalBuy},
	{-0.4, model.SignalHold},
	{-1.0, model.SignalSell},
}

// DefaultSignal applies to scores below every tier.
const DefaultSignal = model.SignalStrongSell

const overboughtRSI = 85

func mapSignal(totalScore float64) model.Signal {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Signal
		}
	}
	return DefaultSignal
}

// Evaluate scores a generated history and its forecast summary.
func Evaluate(ind *model.Indicators, summary *model.ForecastSummary) model.SignalReport {
	f1 := scoreMA200Deviation(ind)
	f2 := scoreRSI(ind)
	f4 := scoreTrendTracker(ind)
	f5 := scoreForecastDrift(summary)

	// the 52-week factor only goes to its extreme when the others agree
	otherFactorsAvg := (f1.RawScore + f2.RawScore + f4.RawScore + f5.RawScore) / 4.0
	f3 := score52WeekPosition(ind, otherFactorsAvg)

	factors := []model.FactorScore{f1, f2, f3, f4, f5}
	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	report := model.SignalReport{
		Factors:    factors,
		TotalScore: total,
		Signal:     mapSignal(total),
	}
	if ind.RSI > overboughtRSI {
		report.WarningMsg = "RSI above 85: overbought, consider taking profit"
	}
	return report
}
