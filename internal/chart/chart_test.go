package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/date"
	"StockPulse/internal/model"
)

func dailyHistory(end date.Date, days int) model.Series {
	out := model.Series{}
	for i := days; i >= 1; i-- {
		out = append(out, model.Historical(end.Add(-i), 100))
	}
	return out
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"", Range1Y},
		{"1m", Range1M},
		{" 6M ", Range6M},
		{"1Y", Range1Y},
	}
	for _, tt := range tests {
		got, err := ParseRange(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRange("5Y")
	assert.ErrorIs(t, err, ErrUnknownRange)
}

func TestFilter(t *testing.T) {
	today := date.MustParse("2024-07-15")
	history := dailyHistory(today, 400)
	forecast := model.Series{model.Forecasted(today, 101, 100.5, 101.5), model.Forecasted(today.Add(1), 102, 101, 103)}
	all := Combine(history, forecast)
	require.Len(t, all, 402)

	month := Filter(all, Range1M, today)
	require.NotEmpty(t, month)
	assert.Equal(t, "2024-06-15", month[0].Date.String())
	assert.Len(t, month, 30+2)

	year := Filter(all, Range1Y, today)
	assert.Equal(t, "2023-07-15", year[0].Date.String())

	last, _ := year.Last()
	assert.True(t, last.IsForecast())
}

func TestSummarize(t *testing.T) {
	start := date.MustParse("2024-01-01")
	forecast := model.Series{}
	for i := 1; i <= 30; i++ {
		forecast = append(forecast, model.Forecasted(start.Add(i), 100+float64(i), 100, 200))
	}

	s, err := Summarize(forecast, 100, 30)
	require.NoError(t, err)
	assert.Equal(t, 130.0, s.Predicted)
	assert.Equal(t, 30.0, s.ChangePercent)
	assert.Equal(t, "2024-01-31", s.Date.String())

	_, err = Summarize(forecast[:10], 100, 30)
	assert.ErrorIs(t, err, ErrHorizonOutOfRange)

	zero, err := Summarize(forecast, 0, 1)
	require.NoError(t, err)
	assert.Zero(t, zero.ChangePercent)
}
