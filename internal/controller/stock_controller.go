package controller

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"StockPulse/internal/catalog"
	"StockPulse/internal/chart"
	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

// SeriesResponse wraps a generated series.
type SeriesResponse struct {
	Ticker string       `json:"ticker,omitempty"`
	Range  chart.Range  `json:"range,omitempty"`
	Points model.Series `json:"points"`
}

// ForecastRequest is the body of POST /api/forecast.
type ForecastRequest struct {
	LastPrice float64   `json:"last_price"`
	LastDate  date.Date `json:"last_date"`
	Days      int       `json:"days"`
}

// GetCompanyListAction lists companies sorted by ticker, filtered by the
// optional q parameter.
func (c *StockController) GetCompanyListAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)

	companies := catalog.Search(req.URL.Query().Get("q"))
	status := writeJSON(w, http.StatusOK, companies)
	c.record(id, "", "companies", 0, len(companies), status)
}

func (c *StockController) GetAnalyticsAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)

	a := catalog.Analyze(catalog.All())
	status := writeJSON(w, http.StatusOK, a)
	c.record(id, "", "analytics", 0, a.Breadth.Total, status)
}

func (c *StockController) GetHistoryAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)
	ticker := req.PathValue("ticker")

	days, err := parseDays(req, c.Collector.HistoryDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		c.record(id, ticker, "history", 0, 0, http.StatusBadRequest)
		return
	}

	company, history, err := c.Collector.History(ticker, days)
	if err != nil {
		status, msg := lookupStatus(ticker, err)
		writeError(w, status, msg)
		c.record(id, ticker, "history", days, 0, status)
		return
	}

	status := writeJSON(w, http.StatusOK, SeriesResponse{Ticker: company.Ticker, Points: history})
	c.record(id, company.Ticker, "history", days, len(history), status)
}

func (c *StockController) GetForecastAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)
	ticker := req.PathValue("ticker")

	days, err := parseDays(req, c.Collector.ForecastDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		c.record(id, ticker, "forecast", 0, 0, http.StatusBadRequest)
		return
	}

	company, _, forecast, err := c.Collector.Chart(ticker, c.Collector.HistoryDays, days)
	if err != nil {
		status, msg := lookupStatus(ticker, err)
		writeError(w, status, msg)
		c.record(id, ticker, "forecast", days, 0, status)
		return
	}

	status := writeJSON(w, http.StatusOK, SeriesResponse{Ticker: company.Ticker, Points: forecast})
	c.record(id, company.Ticker, "forecast", days, len(forecast), status)
}

// chartPoints builds the combined series filtered to the requested range.
func (c *StockController) chartPoints(req *http.Request) (model.Company, chart.Range, model.Series, int, error) {
	r, err := chart.ParseRange(req.URL.Query().Get("range"))
	if err != nil {
		return model.Company{}, "", nil, http.StatusBadRequest, err
	}
	ticker := req.PathValue("ticker")
	company, history, forecast, err := c.Collector.Chart(ticker, c.Collector.HistoryDays, c.Collector.ForecastDays)
	if err != nil {
		status, msg := lookupStatus(ticker, err)
		return model.Company{}, "", nil, status, errors.New(msg)
	}
	return company, r, chart.Filter(chart.Combine(history, forecast), r, c.Today()), http.StatusOK, nil
}

func (c *StockController) GetChartAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)

	company, r, points, status, err := c.chartPoints(req)
	if err != nil {
		writeError(w, status, err.Error())
		c.record(id, req.PathValue("ticker"), "chart", 0, 0, status)
		return
	}

	status = writeJSON(w, http.StatusOK, SeriesResponse{Ticker: company.Ticker, Range: r, Points: points})
	c.record(id, company.Ticker, "chart", c.Collector.HistoryDays+c.Collector.ForecastDays, len(points), status)
}

func (c *StockController) GetReportAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)
	ticker := req.PathValue("ticker")

	report, err := c.Collector.Collect(ticker)
	if err != nil {
		status, msg := lookupStatus(ticker, err)
		writeError(w, status, msg)
		c.record(id, ticker, "report", 0, 0, status)
		return
	}

	status := writeJSON(w, http.StatusOK, report)
	c.record(id, report.Company.Ticker, "report", c.Collector.HistoryDays,
		len(report.History)+len(report.Forecast), status)
}

// PostForecastAction continues an arbitrary anchor without a catalog lookup.
func (c *StockController) PostForecastAction(w http.ResponseWriter, req *http.Request) {
	setHeaders(w)
	id := requestID(w, req)

	var body ForecastRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		c.record(id, "", "forecast", 0, 0, http.StatusBadRequest)
		return
	}
	if body.LastDate.IsZero() {
		writeError(w, http.StatusBadRequest, "last_date is required")
		c.record(id, "", "forecast", body.Days, 0, http.StatusBadRequest)
		return
	}
	if body.Days < 0 || body.Days > MaxDays {
		writeError(w, http.StatusBadRequest, errBadDays.Error())
		c.record(id, "", "forecast", body.Days, 0, http.StatusBadRequest)
		return
	}

	forecast := c.Collector.Source.Forecast(body.LastPrice, body.LastDate, body.Days)
	if !finite(forecast) {
		writeError(w, http.StatusBadRequest, "last_price is too large to forecast")
		c.record(id, "", "forecast", body.Days, 0, http.StatusBadRequest)
		return
	}
	status := writeJSON(w, http.StatusOK, SeriesResponse{Points: forecast})
	c.record(id, "", "forecast", body.Days, len(forecast), status)
}

// finite reports whether every value of the series can be encoded as JSON.
func finite(s model.Series) bool {
	for _, p := range s {
		for _, v := range []float64{p.Price, p.Predicted, p.LowerBound, p.UpperBound} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return false
			}
		}
	}
	return true
}
