package collector

import (
	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

// Source produces the series a report is built from. *synth.Generator
// implements it.
type Source interface {
	History(ticker string, days int) model.Series
	Forecast(lastPrice float64, lastDate date.Date, days int) model.Series
	SeededForecast(ticker string, lastPrice float64, lastDate date.Date, days int) model.Series
}
