// Package controller serves generated series over HTTP and websocket.
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"StockPulse/internal/catalog"
	"StockPulse/internal/collector"
	"StockPulse/internal/date"
	"StockPulse/internal/recorder"
)

// MaxDays caps the days parameter of every endpoint.
const MaxDays = 3650

const requestIDHeader = "X-Request-ID"

var errBadDays = errors.New("days must be an integer between 0 and 3650")

// StockController handles the stock endpoints.
type StockController struct {
	Collector      *collector.Collector
	Recorder       recorder.Recorder
	StreamInterval time.Duration
	// Today anchors chart range filtering.
	Today func() date.Date
}

func NewStockController(col *collector.Collector, rec recorder.Recorder, streamInterval time.Duration) *StockController {
	return &StockController{
		Collector:      col,
		Recorder:       rec,
		StreamInterval: streamInterval,
		Today:          date.Today,
	}
}

// Routes registers every endpoint on mux.
func (c *StockController) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/companies", c.GetCompanyListAction)
	mux.HandleFunc("GET /api/analytics", c.GetAnalyticsAction)
	mux.HandleFunc("GET /api/stocks/{ticker}/history", c.GetHistoryAction)
	mux.HandleFunc("GET /api/stocks/{ticker}/forecast", c.GetForecastAction)
	mux.HandleFunc("GET /api/stocks/{ticker}/chart", c.GetChartAction)
	mux.HandleFunc("GET /api/stocks/{ticker}/report", c.GetReportAction)
	mux.HandleFunc("POST /api/forecast", c.PostForecastAction)
	mux.HandleFunc("OPTIONS /api/", c.PreflightAction)
	mux.HandleFunc("GET /ws/stocks/{ticker}", c.StreamAction)
}

func (c *StockController) PreflightAction(w http.ResponseWriter, _ *http.Request) {
	setHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func setHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

// writeJSON encodes v before writing the header, so an unencodable value
// becomes a 500 instead of a truncated 200. It returns the status sent.
func writeJSON(w http.ResponseWriter, status int, v any) int {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ERROR] encode response: %v", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Printf("[WARN] write response: %v", err)
	}
	return status
}

func writeError(w http.ResponseWriter, status int, msg string) int {
	return writeJSON(w, status, map[string]string{"error": msg})
}

// lookupStatus maps a lookup error to a status and user-facing message.
func lookupStatus(ticker string, err error) (int, string) {
	if errors.Is(err, catalog.ErrUnknownTicker) {
		return http.StatusNotFound, fmt.Sprintf("unknown ticker %s", catalog.Normalize(ticker))
	}
	log.Printf("[ERROR] %s: %v", ticker, err)
	return http.StatusInternalServerError, "internal error"
}

// parseDays reads the days query parameter, using fallback when absent.
func parseDays(req *http.Request, fallback int) (int, error) {
	v := req.URL.Query().Get("days")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > MaxDays {
		return 0, errBadDays
	}
	return n, nil
}

// requestID reuses the caller's request id when present.
func requestID(w http.ResponseWriter, req *http.Request) string {
	id := req.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	return id
}

func (c *StockController) record(id, ticker, kind string, days, points, status int) {
	err := c.Recorder.RecordRequest(&recorder.RequestEvent{
		RequestID: id,
		Ticker:    ticker,
		Kind:      kind,
		Days:      days,
		Points:    points,
		Status:    status,
	})
	if err != nil {
		log.Printf("[WARN] record %s request %s: %v", kind, id, err)
	}
}
