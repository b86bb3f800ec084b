package synth

import "StockPulse/internal/model"

// History returns days daily points ending the day before today. The walk
// is seeded by the ticker; the starting price in [50, 150) is not.
// Non-positive days yield an empty series.
func (g *Generator) History(ticker string, days int) model.Series {
	if days <= 0 {
		return model.Series{}
	}

	start := g.Today().Add(-days)
	price := startPriceMin + g.src.Float64()*startPriceSpan
	w := newWalk(Seed(ticker))

	out := make(model.Series, 0, days)
	for i := 0; i < days; i++ {
		var r float64
		r, w = w.next()
		price *= 1 + (r-historyCenter)*Volatility
		out = append(out, model.Historical(start.Add(i), Round2(price)))
	}
	return out
}
