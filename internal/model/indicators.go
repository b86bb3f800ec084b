package model

// Indicators holds technical indicators computed over a generated history.
type Indicators struct {
	CurrentPrice float64 `json:"current_price"`
	MA20         float64 `json:"ma20"`
	MA50         float64 `json:"ma50"`
	MA200        float64 `json:"ma200"`
	RSI          float64 `json:"rsi"`
	High52w      float64 `json:"high_52w"`
	Low52w       float64 `json:"low_52w"`
	High30d      float64 `json:"high_30d"`
	Low30d       float64 `json:"low_30d"`
	Position52w  float64 `json:"position_52w"` // 0.0 ~ 1.0
}
