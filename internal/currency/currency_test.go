// internal/currency/currency_test.go
package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup("fr")
	require.True(t, ok)
	assert.Equal(t, "EUR", c.Code)

	c, ok = Lookup("gbp")
	require.True(t, ok)
	assert.Equal(t, "UK", c.Country)

	_, ok = Lookup("JP")
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	price := decimal.RequireFromString("18000")

	tests := map[string]string{
		"US": "18000",
		"UK": "14400",
		"FR": "16740",
	}
	for country, want := range tests {
		c, ok := Lookup(country)
		require.True(t, ok)
		assert.True(t, c.Convert(price).Equal(decimal.RequireFromString(want)), country)
	}

	uk, _ := Lookup("UK")
	assert.Equal(t, "143.99", uk.Convert(decimal.RequireFromString("179.99")).StringFixed(2))
}

func TestDistance(t *testing.T) {
	us, _ := Lookup("US")
	fr, _ := Lookup("FR")

	assert.Equal(t, int64(30000), us.Distance(30000))
	assert.Equal(t, int64(48280), fr.Distance(30000))
}
