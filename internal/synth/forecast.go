package synth

import (
	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

// Forecast returns days points starting the day after lastDate. Each step
// applies an unseeded, upward-biased return to the running price, which
// starts at lastPrice exactly. The band half-width is 0.5 per step.
// lastPrice is not validated.
func (g *Generator) Forecast(lastPrice float64, lastDate date.Date, days int) model.Series {
	return forecast(lastPrice, lastDate, days, g.src)
}

// SeededForecast is Forecast with the draws taken from the sine hash seeded by
// the ticker and the anchor date, so identical arguments give identical series.
func (g *Generator) SeededForecast(ticker string, lastPrice float64, lastDate date.Date, days int) model.Series {
	src := &seededSource{w: newWalk(Seed(ticker) + lastDate.DayNumber())}
	return forecast(lastPrice, lastDate, days, src)
}

func forecast(lastPrice float64, lastDate date.Date, days int, src Source) model.Series {
	if days <= 0 {
		return model.Series{}
	}

	price := lastPrice
	out := make(model.Series, 0, days)
	for i := 1; i <= days; i++ {
		price *= 1 + (src.Float64()-forecastCenter)*Volatility
		confidence := float64(i) * confidenceSlope
		out = append(out, model.Forecasted(
			lastDate.Add(i),
			Round2(price),
			Round2(price-confidence),
			Round2(price+confidence),
		))
	}
	return out
}
