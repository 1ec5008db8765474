package gap

import "github.com/shopspring/decimal"

var (
	overboughtRSI = decimal.NewFromInt(70)
	oversoldRSI   = decimal.NewFromInt(30)
)

// Suggest maps a gap direction and RSI reading to a trade suggestion.
// An invalid RSI fails both the overbought and oversold tests.
func Suggest(direction Direction, rsi decimal.NullDecimal) string {
	if direction == DirectionUp {
		if rsi.Valid && rsi.Decimal.GreaterThan(overboughtRSI) {
			return "Overbought GAP UP. Consider SHORT."
		}
		return "GAP UP. Wait for structure."
	}
	if rsi.Valid && rsi.Decimal.LessThan(oversoldRSI) {
		return "Oversold GAP DOWN. Consider LONG."
	}
	return "GAP DOWN. Wait for confirmation."
}
