// internal/currency/currency.go
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// KilometersPerMile converts stored mileage for markets that display kilometres.
var KilometersPerMile = decimal.RequireFromString("1.60934")

// Currency is one display market of the storefront. Prices are stored in USD
// and converted with a fixed rate.
type Currency struct {
	Country     string          `json:"country"`
	Code        string          `json:"code"`
	Symbol      string          `json:"symbol"`
	Locale      string          `json:"locale"`
	Rate        decimal.Decimal `json:"rate"`
	MileageUnit string          `json:"mileage_unit"`
}

var Supported = []Currency{
	{Country: "US", Code: "USD", Symbol: "$", Locale: "en-US", Rate: decimal.NewFromInt(1), MileageUnit: "mi"},
	{Country: "UK", Code: "GBP", Symbol: "£", Locale: "en-GB", Rate: decimal.RequireFromString("0.8"), MileageUnit: "mi"},
	{Country: "FR", Code: "EUR", Symbol: "€", Locale: "fr-FR", Rate: decimal.RequireFromString("0.93"), MileageUnit: "km"},
}

// Lookup finds a currency by country or currency code, ignoring case.
func Lookup(key string) (Currency, bool) {
	for _, c := range Supported {
		if strings.EqualFold(c.Country, key) || strings.EqualFold(c.Code, key) {
			return c, true
		}
	}
	return Currency{}, false
}

// Convert turns a USD amount into this currency, rounded to cents.
func (c Currency) Convert(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(c.Rate).Round(2)
}

// Distance expresses a mileage reading in the market's unit.
func (c Currency) Distance(miles int) int64 {
	d := decimal.NewFromInt(int64(miles))
	if c.MileageUnit == "km" {
		d = d.Mul(KilometersPerMile)
	}
	return d.Round(0).IntPart()
}
