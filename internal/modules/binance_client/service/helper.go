package service

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatQty rounds down to the venue lot-size precision. Rounding up could
// sell more than was actually filled.
func FormatQty(q float64, prec int32) string {
	return decimal.NewFromFloat(q).RoundDown(prec).String()
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
