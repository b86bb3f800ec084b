package model

// Signal is the trading recommendation shown next to a company.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG SELL"
)

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// SignalReport is the output of the strategy engine.
type SignalReport struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Signal     Signal        `json:"signal"`
	WarningMsg string        `json:"warning,omitempty"`
}
