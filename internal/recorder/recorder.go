package recorder

import "StockPulse/internal/model"

// RequestEvent describes one served generation request.
type RequestEvent struct {
	RequestID string
	Ticker    string
	Kind      string // "history", "forecast", "chart", "report", "stream"
	Days      int
	Points    int
	Status    int
}

// DigestEntry is the per-ticker line of a digest run.
type DigestEntry struct {
	Ticker        string
	LastPrice     float64
	Predicted     float64
	ChangePercent float64
	Signal        model.Signal
}

// DigestRun records a scheduled or manual digest.
type DigestRun struct {
	RunID   string
	Trigger string // "CRON" or "MANUAL"
	Entries []DigestEntry
	Sent    bool
}

// Recorder keeps an audit trail of served requests and digests. Generated
// series themselves are never stored.
type Recorder interface {
	RecordRequest(evt *RequestEvent) error
	RecordDigest(run *DigestRun) error
	Close() error
}

// EntriesFromReports summarizes reports for a digest run.
func EntriesFromReports(reports []*model.StockReport) []DigestEntry {
	entries := make([]DigestEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, DigestEntry{
			Ticker:        r.Company.Ticker,
			LastPrice:     r.Summary.CurrentPrice,
			Predicted:     r.Summary.Predicted,
			ChangePercent: r.Summary.ChangePercent,
			Signal:        r.Signal.Signal,
		})
	}
	return entries
}
