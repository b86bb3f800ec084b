package model

import (
	"encoding/json"
	"fmt"

	"StockPulse/internal/date"
)

// PointKind tags a SeriesPoint as an observation or a forecast.
type PointKind int

const (
	PointHistorical PointKind = iota
	PointForecast
)

func (k PointKind) String() string {
	switch k {
	case PointHistorical:
		return "historical"
	case PointForecast:
		return "forecast"
	default:
		return fmt.Sprintf("PointKind(%d)", int(k))
	}
}

// SeriesPoint is a single daily value. Historical points carry Price; forecast
// points carry Predicted and the confidence bounds.
type SeriesPoint struct {
	Date       date.Date
	Kind       PointKind
	Price      float64
	Predicted  float64
	LowerBound float64
	UpperBound float64
}

// Historical builds an observed point.
func Historical(d date.Date, price float64) SeriesPoint {
	return SeriesPoint{Date: d, Kind: PointHistorical, Price: price}
}

// Forecasted builds a forecast point.
func Forecasted(d date.Date, predicted, lower, upper float64) SeriesPoint {
	return SeriesPoint{Date: d, Kind: PointForecast, Predicted: predicted, LowerBound: lower, UpperBound: upper}
}

func (p SeriesPoint) IsForecast() bool { return p.Kind == PointForecast }

// Value is the price a chart would plot for the point.
func (p SeriesPoint) Value() float64 {
	if p.IsForecast() {
		return p.Predicted
	}
	return p.Price
}

// Width is the confidence band width, zero for historical points.
func (p SeriesPoint) Width() float64 {
	if !p.IsForecast() {
		return 0
	}
	return p.UpperBound - p.LowerBound
}

// chartPoint is the wire shape consumed by the dashboard chart. Forecast points
// keep price = 0, historical points omit the forecast fields.
type chartPoint struct {
	Date       date.Date `json:"date"`
	Price      float64   `json:"price"`
	Predicted  *float64  `json:"predicted,omitempty"`
	LowerBound *float64  `json:"lower_bound,omitempty"`
	UpperBound *float64  `json:"upper_bound,omitempty"`
}

func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	cp := chartPoint{Date: p.Date, Price: p.Price}
	if p.IsForecast() {
		predicted, lower, upper := p.Predicted, p.LowerBound, p.UpperBound
		cp.Price = 0
		cp.Predicted = &predicted
		cp.LowerBound = &lower
		cp.UpperBound = &upper
	}
	return json.Marshal(cp)
}

func (p *SeriesPoint) UnmarshalJSON(data []byte) error {
	var cp chartPoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return err
	}
	if cp.Predicted != nil {
		*p = SeriesPoint{Date: cp.Date, Kind: PointForecast, Predicted: *cp.Predicted}
		if cp.LowerBound != nil {
			p.LowerBound = *cp.LowerBound
		}
		if cp.UpperBound != nil {
			p.UpperBound = *cp.UpperBound
		}
		return nil
	}
	*p = Historical(cp.Date, cp.Price)
	return nil
}

// Series is an ascending, gap-free run of daily points.
type Series []SeriesPoint

func (s Series) Len() int { return len(s) }

// Last returns the final point and false when the series is empty.
func (s Series) Last() (SeriesPoint, bool) {
	if len(s) == 0 {
		return SeriesPoint{}, false
	}
	return s[len(s)-1], true
}

// Prices returns the plotted value of every point.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value()
	}
	return out
}
