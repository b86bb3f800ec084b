package controller

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/collector"
	"StockPulse/internal/date"
	"StockPulse/internal/model"
	"StockPulse/internal/recorder"
	"StockPulse/internal/synth"
)

type captureRecorder struct {
	recorder.NoopRecorder
	mu     sync.Mutex
	events []recorder.RequestEvent
}

func (c *captureRecorder) RecordRequest(evt *recorder.RequestEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *evt)
	return nil
}

func (c *captureRecorder) last() recorder.RequestEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[len(c.events)-1]
}

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func (c *captureRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func newTestServer(t *testing.T) (*httptest.Server, *captureRecorder) {
	return newTestServerWith(t, fixedSource(0.4), 0)
}

func newTestServerWith(t *testing.T, src synth.Source, interval time.Duration) (*httptest.Server, *captureRecorder) {
	t.Helper()
	gen := synth.New(synth.WithSource(src), synth.WithClock(func() time.Time { return testNow }))
	col := collector.NewCollector(gen)
	col.HistoryDays = 60
	col.ForecastDays = 10

	rec := &captureRecorder{}
	c := NewStockController(col, rec, interval)
	c.Today = func() date.Date { return date.Of(testNow) }

	mux := http.NewServeMux()
	c.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, rec
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestGetCompanyListAction(t *testing.T) {
	srv, rec := newTestServer(t)

	var companies []model.Company
	resp := getJSON(t, srv.URL+"/api/companies", &companies)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Len(t, companies, 25)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
	assert.Equal(t, resp.Header.Get(requestIDHeader), rec.last().RequestID)
}

func TestGetCompanyListAction_Search(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"?q=corp", []string{"CVX", "INTC", "MSFT", "NVDA", "ORCL"}},
		{"?q=TSLA", []string{"TSLA"}},
		{"?q=nothing-here", []string{}},
	}
	for _, tt := range tests {
		var companies []model.Company
		resp := getJSON(t, srv.URL+"/api/companies"+tt.query, &companies)
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.query)

		got := make([]string, len(companies))
		for i, c := range companies {
			got[i] = c.Ticker
		}
		assert.IsNonDecreasing(t, got, tt.query)
		if tt.want == nil {
			assert.Len(t, got, 25)
			continue
		}
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestGetAnalyticsAction(t *testing.T) {
	srv, rec := newTestServer(t)

	var a model.MarketAnalytics
	resp := getJSON(t, srv.URL+"/api/analytics", &a)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.Breadth{Advancing: 17, Declining: 7, Unchanged: 1, Total: 25}, a.Breadth)
	require.Len(t, a.TopGainers, 5)
	assert.Equal(t, "NVDA", a.TopGainers[0].Ticker)
	require.Len(t, a.TopLosers, 5)
	assert.Equal(t, "INTC", a.TopLosers[0].Ticker)
	assert.Len(t, a.Distribution, 5)
	assert.Equal(t, "analytics", rec.last().Kind)
}

func TestGetHistoryAction(t *testing.T) {
	srv, rec := newTestServer(t)

	var body SeriesResponse
	resp := getJSON(t, srv.URL+"/api/stocks/aapl/history?days=30", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "AAPL", body.Ticker)
	require.Len(t, body.Points, 30)
	assert.Equal(t, "2024-03-14", body.Points[29].Date.String())

	evt := rec.last()
	assert.Equal(t, "history", evt.Kind)
	assert.Equal(t, 30, evt.Days)
	assert.Equal(t, 30, evt.Points)

	resp = getJSON(t, srv.URL+"/api/stocks/AAPL/history", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Points, 60)

	resp = getJSON(t, srv.URL+"/api/stocks/AAPL/history?days=0", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Points)
}

func TestGetHistoryAction_Errors(t *testing.T) {
	srv, rec := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/stocks/ZZZZ/history", http.StatusNotFound},
		{"/api/stocks/AAPL/history?days=abc", http.StatusBadRequest},
		{"/api/stocks/AAPL/history?days=-1", http.StatusBadRequest},
		{"/api/stocks/AAPL/history?days=100000", http.StatusBadRequest},
		{"/api/stocks/ZZZZ/forecast", http.StatusNotFound},
		{"/api/stocks/AAPL/chart?range=5Y", http.StatusBadRequest},
		{"/api/stocks/ZZZZ/report", http.StatusNotFound},
	}
	for _, tt := range tests {
		var body map[string]string
		resp := getJSON(t, srv.URL+tt.path, &body)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
		assert.NotEmpty(t, body["error"], tt.path)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), tt.path)
		assert.Equal(t, tt.status, rec.last().Status, tt.path)
	}
}

func TestGetForecastAction(t *testing.T) {
	srv, _ := newTestServer(t)

	var hist, fc SeriesResponse
	getJSON(t, srv.URL+"/api/stocks/MSFT/history", &hist)
	resp := getJSON(t, srv.URL+"/api/stocks/MSFT/forecast?days=5", &fc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, fc.Points, 5)

	last := hist.Points[len(hist.Points)-1]
	assert.Equal(t, last.Date.Add(1), fc.Points[0].Date)
	// a draw of 0.4 is a zero return, so the forecast holds the anchor price.
	assert.Equal(t, last.Price, fc.Points[0].Predicted)
	assert.Equal(t, model.PointForecast, fc.Points[0].Kind)
}

func TestGetChartAction(t *testing.T) {
	srv, _ := newTestServer(t)

	var body SeriesResponse
	resp := getJSON(t, srv.URL+"/api/stocks/NVDA/chart?range=1m", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1M", string(body.Range))

	// 2024-02-15 through 2024-03-14 plus ten forecast days.
	require.Len(t, body.Points, 29+10)
	assert.Equal(t, "2024-02-15", body.Points[0].Date.String())
	assert.False(t, body.Points[28].IsForecast())
	assert.True(t, body.Points[29].IsForecast())

	resp = getJSON(t, srv.URL+"/api/stocks/NVDA/chart", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1Y", string(body.Range))
	assert.Len(t, body.Points, 70)
}

func TestGetReportAction(t *testing.T) {
	srv, _ := newTestServer(t)

	var report model.StockReport
	resp := getJSON(t, srv.URL+"/api/stocks/TSLA/report", &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "TSLA", report.Company.Ticker)
	assert.Len(t, report.History, 60)
	assert.Len(t, report.Forecast, 10)
	assert.Equal(t, 10, report.Summary.Horizon)
	assert.NotEmpty(t, report.Signal.Signal)
}

func TestPostForecastAction(t *testing.T) {
	srv, rec := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/forecast", "application/json",
		strings.NewReader(`{"last_price":150,"last_date":"2024-01-01","days":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body SeriesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Points, 3)
	for i, p := range body.Points {
		assert.Equal(t, date.MustParse("2024-01-01").Add(i+1), p.Date)
		assert.Equal(t, 150.0, p.Predicted)
		assert.Equal(t, 150-0.5*float64(i+1), p.LowerBound)
	}
	assert.Equal(t, 3, rec.last().Points)

	for _, bad := range []string{`{`, `{"last_price":1,"days":3}`, `{"last_price":1,"last_date":"2024-01-01","days":-2}`} {
		resp, err := http.Post(srv.URL+"/api/forecast", "application/json", strings.NewReader(bad))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestPostForecastAction_Overflow(t *testing.T) {
	// a draw of 0.9 grows the price by 1% per day, past MaxFloat64.
	srv, rec := newTestServerWith(t, fixedSource(0.9), 0)

	resp, err := http.Post(srv.URL+"/api/forecast", "application/json",
		strings.NewReader(`{"last_price":1.79e308,"last_date":"2024-01-01","days":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, http.StatusBadRequest, rec.last().Status)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	status := writeJSON(w, http.StatusOK, map[string]float64{"v": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestPreflightAction(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/forecast", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestStreamAction(t *testing.T) {
	srv, rec := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stocks/KO?range=1M"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var points model.Series
	for {
		var p model.SeriesPoint
		if err := conn.ReadJSON(&p); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
			break
		}
		points = append(points, p)
	}

	require.Len(t, points, 39)
	assert.True(t, points[len(points)-1].IsForecast())
	evt := rec.last()
	assert.Equal(t, "stream", evt.Kind)
	assert.Equal(t, 39, evt.Points)
}

func TestStreamAction_ClientDisconnect(t *testing.T) {
	srv, rec := newTestServerWith(t, fixedSource(0.4), time.Hour)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stocks/KO"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	var p model.SeriesPoint
	require.NoError(t, conn.ReadJSON(&p))
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye")))
	conn.Close()

	// the handler must return long before the hour-long pause ends
	require.Eventually(t, func() bool { return rec.count() > 0 }, 5*time.Second, 10*time.Millisecond)
	evt := rec.last()
	assert.Equal(t, "stream", evt.Kind)
	assert.Equal(t, 1, evt.Points)
}

func TestStreamAction_UnknownTicker(t *testing.T) {
	srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/stocks/NOPE"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
