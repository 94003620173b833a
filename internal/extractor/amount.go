package extractor

import (
	"github.com/shopspring/decimal"
)

// Normalize converts an integer on-chain amount into its display value,
// integer / 10^decimals, as a float64. Values are for reporting; precision
// loss past float64 significance is accepted.
func Normalize(amount decimal.Decimal, decimals uint8) float64 {
	return amount.Shift(-int32(decimals)).InexactFloat64()
}
