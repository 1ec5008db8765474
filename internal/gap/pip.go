package gap

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	pipStandard = decimal.New(1, -4) // 0.0001
	pipYen      = decimal.New(1, -2) // 0.01
)

// PipSize returns the pip increment for a pair symbol. Yen-quoted pairs use
// 0.01, everything else 0.0001. Detection and resolution must both go
// through here so a gap measured in pips converts back to the same price
// distance later.
func PipSize(pair string) decimal.Decimal {
	if strings.Contains(pair, "JPY") {
		return pipYen
	}
	return pipStandard
}
