package controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// readPump drains client frames so close and ping frames are handled, and
// cancels once the client goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// StreamAction sends the chart one point per message, then closes. It stops
// early when the client disconnects.
func (c *StockController) StreamAction(w http.ResponseWriter, req *http.Request) {
	id := requestID(w, req)

	company, _, points, status, err := c.chartPoints(req)
	if err != nil {
		setHeaders(w)
		writeError(w, status, err.Error())
		c.record(id, req.PathValue("ticker"), "stream", 0, 0, status)
		return
	}

	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade %s: %v", company.Ticker, err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	go readPump(conn, cancel)

	sent := 0
	for _, p := range points {
		if ctx.Err() != nil {
			break
		}
		if err := conn.WriteJSON(p); err != nil {
			log.Printf("[WARN] stream %s: %v", company.Ticker, err)
			break
		}
		sent++
		if c.StreamInterval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.StreamInterval):
			}
		}
	}
	c.record(id, company.Ticker, "stream", c.Collector.HistoryDays+c.Collector.ForecastDays, sent, http.StatusSwitchingProtocols)

	if ctx.Err() != nil {
		log.Printf("[INFO] stream %s stopped by client after %d points", company.Ticker, sent)
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.Printf("[WARN] close stream %s: %v", company.Ticker, err)
	}
}
