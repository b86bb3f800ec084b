// Package catalog holds the fixed list of companies the dashboard covers.
package catalog

import (
	"errors"
	"strings"

	"StockPulse/internal/model"
)

// ErrUnknownTicker is returned by Lookup for symbols outside the catalog.
var ErrUnknownTicker = errors.New("unknown ticker")

var companies = []model.Company{
	{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology", MarketCap: "2.8T", ChangePercent: 1.2, Volume: "45.2M", Signal: model.SignalBuy},
	{Ticker: "MSFT", Name: "Microsoft Corp.", Sector: "Technology", MarketCap: "2.4T", ChangePercent: 0.8, Volume: "22.1M", Signal: model.SignalHold},
	{Ticker: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", MarketCap: "1.7T", ChangePercent: -0.5, Volume: "18.5M", Signal: model.SignalHold},
	{Ticker: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical", MarketCap: "1.3T", ChangePercent: 2.1, Volume: "35.8M", Signal: model.SignalStrongBuy},
	{Ticker: "TSLA", Name: "Tesla Inc.", Sector: "Automotive", MarketCap: "800B", ChangePercent: -1.8, Volume: "98.2M", Signal: model.SignalSell},
	{Ticker: "NVDA", Name: "NVIDIA Corp.", Sector: "Semiconductors", MarketCap: "1.1T", ChangePercent: 3.5, Volume: "52.4M", Signal: model.SignalStrongBuy},
	{Ticker: "JPM", Name: "JPMorgan Chase", Sector: "Financial", MarketCap: "400B", ChangePercent: 0.2, Volume: "9.1M", Signal: model.SignalHold},
	{Ticker: "V", Name: "Visa Inc.", Sector: "Financial", MarketCap: "450B", ChangePercent: -0.1, Volume: "6.3M", Signal: model.SignalHold},
	{Ticker: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", MarketCap: "420B", ChangePercent: 0.4, Volume: "7.8M", Signal: model.SignalBuy},
	{Ticker: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive", MarketCap: "400B", ChangePercent: 0.1, Volume: "12.4M", Signal: model.SignalHold},
	{Ticker: "PG", Name: "Procter & Gamble", Sector: "Consumer Defensive", MarketCap: "360B", ChangePercent: 0.3, Volume: "5.1M", Signal: model.SignalHold},
	{Ticker: "MA", Name: "Mastercard Inc.", Sector: "Financial", MarketCap: "350B", ChangePercent: -0.2, Volume: "4.2M", Signal: model.SignalBuy},
	{Ticker: "HD", Name: "Home Depot", Sector: "Consumer Cyclical", MarketCap: "320B", ChangePercent: 0.5, Volume: "3.8M", Signal: model.SignalHold},
	{Ticker: "CVX", Name: "Chevron Corp.", Sector: "Energy", MarketCap: "300B", ChangePercent: 1.1, Volume: "8.5M", Signal: model.SignalBuy},
	{Ticker: "MRK", Name: "Merck & Co.", Sector: "Healthcare", MarketCap: "280B", ChangePercent: 0.2, Volume: "6.4M", Signal: model.SignalHold},
	{Ticker: "KO", Name: "Coca-Cola Co.", Sector: "Consumer Defensive", MarketCap: "270B", ChangePercent: 0.1, Volume: "11.2M", Signal: model.SignalHold},
	{Ticker: "PEP", Name: "PepsiCo Inc.", Sector: "Consumer Defensive", MarketCap: "260B", ChangePercent: 0.0, Volume: "5.6M", Signal: model.SignalHold},
	{Ticker: "BAC", Name: "Bank of America", Sector: "Financial", MarketCap: "250B", ChangePercent: -0.3, Volume: "32.1M", Signal: model.SignalSell},
	{Ticker: "CSCO", Name: "Cisco Systems", Sector: "Technology", MarketCap: "220B", ChangePercent: -0.4, Volume: "14.2M", Signal: model.SignalHold},
	{Ticker: "INTC", Name: "Intel Corp.", Sector: "Technology", MarketCap: "180B", ChangePercent: -2.1, Volume: "41.5M", Signal: model.SignalStrongSell},
	{Ticker: "AMD", Name: "Advanced Micro Devices", Sector: "Technology", MarketCap: "170B", ChangePercent: 2.8, Volume: "65.4M", Signal: model.SignalBuy},
	{Ticker: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services", MarketCap: "190B", ChangePercent: 1.5, Volume: "7.2M", Signal: model.SignalBuy},
	{Ticker: "DIS", Name: "Walt Disney Co.", Sector: "Communication Services", MarketCap: "160B", ChangePercent: 0.6, Volume: "12.8M", Signal: model.SignalHold},
	{Ticker: "CRM", Name: "Salesforce Inc.", Sector: "Technology", MarketCap: "210B", ChangePercent: 0.9, Volume: "6.1M", Signal: model.SignalBuy},
	{Ticker: "ORCL", Name: "Oracle Corp.", Sector: "Technology", MarketCap: "230B", ChangePercent: 0.7, Volume: "8.3M", Signal: model.SignalHold},
}

var byTicker = func() map[string]int {
	m := make(map[string]int, len(companies))
	for i, c := range companies {
		m[c.Ticker] = i
	}
	return m
}()

// All returns a copy of the catalog in display order.
func All() []model.Company {
	out := make([]model.Company, len(companies))
	copy(out, companies)
	return out
}

// Tickers returns every symbol in display order.
func Tickers() []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Ticker
	}
	return out
}

// Normalize upper-cases and trims a user supplied symbol.
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Lookup finds a company by ticker, ignoring case.
func Lookup(ticker string) (model.Company, error) {
	i, ok := byTicker[Normalize(ticker)]
	if !ok {
		return model.Company{}, ErrUnknownTicker
	}
	return companies[i], nil
}
