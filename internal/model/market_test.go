package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/date"
)

func TestSeriesPoint_WireForm(t *testing.T) {
	d := date.MustParse("2024-01-02")

	hist, err := json.Marshal(Historical(d, 101.25))
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","price":101.25}`, string(hist))

	fc, err := json.Marshal(Forecasted(d, 150.5, 150, 151))
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-02","price":0,"predicted":150.5,"lower_bound":150,"upper_bound":151}`, string(fc))
}

func TestSeriesPoint_DecodeRestoresKind(t *testing.T) {
	var p SeriesPoint
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-02","price":0,"predicted":10,"lower_bound":9.5,"upper_bound":10.5}`), &p))
	assert.True(t, p.IsForecast())
	assert.Equal(t, 1.0, p.Width())
	assert.Equal(t, 10.0, p.Value())

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-02","price":42}`), &p))
	assert.False(t, p.IsForecast())
	assert.Equal(t, 0.0, p.Width())
	assert.Equal(t, 42.0, p.Value())
}

func TestSeries_Last(t *testing.T) {
	_, ok := Series{}.Last()
	assert.False(t, ok)

	d := date.MustParse("2024-01-01")
	s := Series{Historical(d, 1), Historical(d.Add(1), 2)}
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 2.0, last.Price)
	assert.Equal(t, []float64{1, 2}, s.Prices())
}
