package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

// usd renders a price as US dollars, e.g. $1,234.50.
func usd(v float64) string {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatStockReport formats one ticker's report as a Telegram HTML message.
func FormatStockReport(r *model.StockReport) string {
	var b strings.Builder
	c := r.Company
	ind := r.Indicators

	b.WriteString(fmt.Sprintf("📈 <b>%s (%s)</b> | %s\n", html.EscapeString(c.Name), c.Ticker, r.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%s • Market cap %s\n\n", html.EscapeString(c.Sector), c.MarketCap))

	b.WriteString(fmt.Sprintf("Price: %s\n", usd(ind.CurrentPrice)))
	b.WriteString(fmt.Sprintf("MA20: %s | MA50: %s | MA200: %s\n", usd(ind.MA20), usd(ind.MA50), usd(ind.MA200)))
	b.WriteString(fmt.Sprintf("RSI(14): %.0f | 52w: %s - %s (%.0f%%)\n\n",
		ind.RSI, usd(ind.Low52w), usd(ind.High52w), ind.Position52w*100))

	if s := r.Summary; s.Horizon > 0 {
		b.WriteString(fmt.Sprintf("🔮 <b>%d-day forecast:</b> %s (%+.2f%%)\n", s.Horizon, usd(s.Predicted), s.ChangePercent))
		b.WriteString(fmt.Sprintf("   Range: %s - %s\n\n", usd(s.LowerBound), usd(s.UpperBound)))
	}

	b.WriteString(fmt.Sprintf("💡 <b>Signal:</b> %s (score %+.3f)\n", r.Signal.Signal, r.Signal.TotalScore))
	for _, f := range r.Signal.Factors {
		b.WriteString(fmt.Sprintf("  %s (%s): %+.1f ×%.2f = %+.3f\n",
			f.Name, html.EscapeString(f.Commentary), f.RawScore, f.Weight, f.Weighted))
	}
	if r.Signal.WarningMsg != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", r.Signal.WarningMsg))
	}
	return b.String()
}

// FormatDigest formats the watchlist digest for a day.
func FormatDigest(reports []*model.StockReport, day date.Date) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>StockPulse digest</b> | %s\n\n", day))

	if len(reports) == 0 {
		b.WriteString("No tickers in the watchlist.")
		return b.String()
	}

	for _, r := range reports {
		s := r.Summary
		b.WriteString(fmt.Sprintf("<b>%s</b> %s → %s (%+.2f%%) %s\n",
			r.Company.Ticker, usd(s.CurrentPrice), usd(s.Predicted), s.ChangePercent, r.Signal.Signal))
	}

	ranked := make([]*model.StockReport, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Summary.ChangePercent > ranked[j].Summary.ChangePercent
	})
	top, bottom := ranked[0], ranked[len(ranked)-1]
	b.WriteString(fmt.Sprintf("\n🚀 Top forecast: %s %+.2f%%\n", top.Company.Ticker, top.Summary.ChangePercent))
	b.WriteString(fmt.Sprintf("🔻 Weakest forecast: %s %+.2f%%\n", bottom.Company.Ticker, bottom.Summary.ChangePercent))
	return b.String()
}

// FormatCompanies lists the catalog.
func FormatCompanies(companies []model.Company) string {
	var b strings.Builder
	b.WriteString("🏢 <b>Companies</b>\n\n")
	for _, c := range companies {
		b.WriteString(fmt.Sprintf("%s  %s (%+.1f%%) %s\n", c.Ticker, html.EscapeString(c.Name), c.ChangePercent, c.Signal))
	}
	return b.String()
}

// FormatMarket summarizes breadth, top movers and the signal distribution.
func FormatMarket(a model.MarketAnalytics) string {
	var b strings.Builder
	br := a.Breadth
	b.WriteString(fmt.Sprintf("🌐 <b>Market breadth:</b> %d up, %d down, %d flat of %d\n",
		br.Advancing, br.Declining, br.Unchanged, br.Total))

	movers := func(label string, list []model.Company) {
		parts := make([]string, len(list))
		for i, c := range list {
			parts[i] = fmt.Sprintf("%s %+.1f%%", c.Ticker, c.ChangePercent)
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(parts, ", ")))
	}
	movers("🚀 Gainers", a.TopGainers)
	movers("🔻 Losers", a.TopLosers)

	parts := make([]string, len(a.Distribution))
	for i, s := range a.Distribution {
		parts[i] = fmt.Sprintf("%s %d", s.Signal, s.Count)
	}
	b.WriteString(fmt.Sprintf("💡 Signals: %s\n", strings.Join(parts, " | ")))
	return b.String()
}
