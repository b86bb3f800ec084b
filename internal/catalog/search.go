package catalog

import (
	"sort"
	"strings"

	"StockPulse/internal/model"
)

// TopMovers is the number of gainers and losers Analyze reports.
const TopMovers = 5

// Search returns the companies whose ticker or name contains query, ignoring
// case, sorted by ticker. An empty query matches every company.
func Search(query string) []model.Company {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Company, 0, len(companies))
	for _, c := range companies {
		if strings.Contains(strings.ToLower(c.Ticker), q) || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Analyze computes market breadth, the top movers each way and the signal
// distribution. Signals are listed in order of first appearance.
func Analyze(list []model.Company) model.MarketAnalytics {
	var a model.MarketAnalytics
	a.Breadth.Total = len(list)

	index := map[model.Signal]int{}
	for _, c := range list {
		switch {
		case c.ChangePercent > 0:
			a.Breadth.Advancing++
		case c.ChangePercent < 0:
			a.Breadth.Declining++
		default:
			a.Breadth.Unchanged++
		}

		i, ok := index[c.Signal]
		if !ok {
			i = len(a.Distribution)
			index[c.Signal] = i
			a.Distribution = append(a.Distribution, model.SignalCount{Signal: c.Signal})
		}
		a.Distribution[i].Count++
	}

	ranked := make([]model.Company, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ChangePercent > ranked[j].ChangePercent })
	n := min(TopMovers, len(ranked))
	a.TopGainers = append([]model.Company{}, ranked[:n]...)

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ChangePercent < ranked[j].ChangePercent })
	a.TopLosers = append([]model.Company{}, ranked[:n]...)
	return a
}
