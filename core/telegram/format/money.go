package format

import (
	"math"

	"github.com/leekchan/accounting"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

// USD renders a dollar amount with thousands separators, e.g. $12,345.67.
func USD(v float64) string {
	return usd.FormatMoneyFloat64(v)
}

// Change renders a 24h percentage change as a direction word and an absolute value.
// Only a strictly positive change reads as Up.
func Change(pct float64) string {
	dir := "Down"
	if pct > 0 {
		dir = "Up"
	}
	return dir + " " + Fixed(math.Abs(pct), 2) + "%"
}
