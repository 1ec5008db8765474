package twelvedata

import "github.com/shopspring/decimal"

// Candle represents a single OHLC bar from the time_series endpoint.
// Twelve Data returns every numeric field as a JSON string.
type Candle struct {
	Datetime string          `json:"datetime"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
}

// timeSeriesResponse is the envelope for /time_series. On failure the API
// answers HTTP 200 with status "error" and a message.
type timeSeriesResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Values  []Candle `json:"values"`
}

type rsiValue struct {
	Datetime string          `json:"datetime"`
	RSI      decimal.Decimal `json:"rsi"`
}

type rsiResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Values  []rsiValue `json:"values"`
}
