package twelvedata

import "github.com/shopspring/decimal"

// MarketDataClient defines the interface for quote provider operations
type MarketDataClient interface {
	GetCandles(symbol, interval string, count int) ([]Candle, error)
	GetRSI(symbol, interval string) (decimal.NullDecimal, error)
}

// Ensure both Client and MockClient implement MarketDataClient
var _ MarketDataClient = (*Client)(nil)
var _ MarketDataClient = (*MockClient)(nil)
