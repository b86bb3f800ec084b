package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c, err := Lookup(" aapl ")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", c.Name)

	_, err = Lookup("ZZZZ")
	assert.ErrorIs(t, err, ErrUnknownTicker)
}

func TestAll_IsCopy(t *testing.T) {
	all := All()
	require.Len(t, all, 25)
	all[0].Name = "changed"

	c, err := Lookup("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", c.Name)
}

func TestTickers_UniqueUppercase(t *testing.T) {
	seen := map[string]bool{}
	for _, tk := range Tickers() {
		assert.Equal(t, Normalize(tk), tk)
		assert.False(t, seen[tk], "duplicate %s", tk)
		seen[tk] = true
	}
}
