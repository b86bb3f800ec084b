package model

// Breadth counts advancing, declining and unchanged companies.
type Breadth struct {
	Advancing int `json:"advancing"`
	Declining int `json:"declining"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
}

// SignalCount is one slice of the signal distribution.
type SignalCount struct {
	Signal Signal `json:"signal"`
	Count  int    `json:"count"`
}

// MarketAnalytics summarizes the daily change and signals across companies.
type MarketAnalytics struct {
	Breadth      Breadth       `json:"breadth"`
	TopGainers   []Company     `json:"top_gainers"`
	TopLosers    []Company     `json:"top_losers"`
	Distribution []SignalCount `json:"signal_distribution"`
}
