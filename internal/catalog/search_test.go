package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

func tickersOf(list []model.Company) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Ticker
	}
	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"ma", []string{"AMZN", "MA", "WMT"}},
		{"  CORP ", []string{"CVX", "MSFT", "NVDA", "ORCL", "INTC"}},
		{"inc.", []string{"AAPL", "AMZN", "CRM", "GOOGL", "MA", "NFLX", "PEP", "TSLA", "V", "WMT"}},
		{"johnson", []string{"JNJ"}},
		{"xyz", []string{}},
	}
	for _, tt := range tests {
		got := tickersOf(Search(tt.query))
		assert.ElementsMatch(t, tt.want, got, tt.query)
		assert.IsNonDecreasing(t, got, tt.query)
	}
}

func TestSearch_EmptyQuerySortedByTicker(t *testing.T) {
	all := Search("")
	require.Len(t, all, 25)
	assert.Equal(t, "AAPL", all[0].Ticker)
	assert.Equal(t, "WMT", all[len(all)-1].Ticker)
	assert.IsNonDecreasing(t, tickersOf(all))
}

func TestAnalyze_Catalog(t *testing.T) {
	a := Analyze(All())

	assert.Equal(t, model.Breadth{Advancing: 17, Declining: 7, Unchanged: 1, Total: 25}, a.Breadth)
	assert.Equal(t, []string{"NVDA", "AMD", "AMZN", "NFLX", "AAPL"}, tickersOf(a.TopGainers))
	assert.Equal(t, []string{"INTC", "TSLA", "GOOGL", "CSCO", "BAC"}, tickersOf(a.TopLosers))
	assert.Equal(t, []model.SignalCount{
		{Signal: model.SignalBuy, Count: 7},
		{Signal: model.SignalHold, Count: 13},
		{Signal: model.SignalStrongBuy, Count: 2},
		{Signal: model.SignalSell, Count: 2},
		{Signal: model.SignalStrongSell, Count: 1},
	}, a.Distribution)
}

func TestAnalyze_Small(t *testing.T) {
	tests := []struct {
		name    string
		list    []model.Company
		breadth model.Breadth
		movers  int
	}{
		{"empty", nil, model.Breadth{}, 0},
		{"flat", []model.Company{{Ticker: "A"}, {Ticker: "B"}}, model.Breadth{Unchanged: 2, Total: 2}, 2},
		{"mixed", []model.Company{
			{Ticker: "A", ChangePercent: 1}, {Ticker: "B", ChangePercent: -1}, {Ticker: "C", ChangePercent: 2},
		}, model.Breadth{Advancing: 2, Declining: 1, Total: 3}, 3},
	}
	for _, tt := range tests {
		a := Analyze(tt.list)
		assert.Equal(t, tt.breadth, a.Breadth, tt.name)
		assert.Len(t, a.TopGainers, tt.movers, tt.name)
		assert.Len(t, a.TopLosers, tt.movers, tt.name)
	}
}
