package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// Nights returns the number of nights between two dates of a half-open
// range [checkIn, checkOut). Dates are expected to be midnight-normalized.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / hoursPerDay)
}

// ComputeTotal prices a stay as rate per night times the number of nights,
// rounded to two decimal places. The result is deterministic for identical
// inputs; any client-supplied total is advisory and recomputed server-side.
func ComputeTotal(rate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := decimal.NewFromInt(int64(Nights(checkIn, checkOut)))

	return rate.Mul(nights).Round(2)
}
