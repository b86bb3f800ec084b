package model

// Company is an entry of the static catalog.
type Company struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	MarketCap     string  `json:"market_cap"`
	ChangePercent float64 `json:"change_percent"`
	Volume        string  `json:"volume"`
	Signal        Signal  `json:"signal"`
}
