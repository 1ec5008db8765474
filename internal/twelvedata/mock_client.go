package twelvedata

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MockClient provides simulated market data for development/testing
type MockClient struct {
	prices map[string]string // pair -> previous close
	gaps   map[string]string // pair -> open offset applied to the latest candle
	rsi    map[string]string
}

// NewMockClient creates a mock client with deterministic quotes. Two pairs
// open away from the prior close far enough to register as gaps.
func NewMockClient() *MockClient {
	return &MockClient{
		prices: map[string]string{
			"GBP/USD": "1.2470",
			"EUR/USD": "1.0855",
			"USD/JPY": "150.10",
			"EUR/JPY": "162.40",
			"AUD/JPY": "97.85",
		},
		gaps: map[string]string{
			"GBP/USD": "0.0030", // 30 pips up
			"USD/JPY": "-0.35",  // 35 pips down
		},
		rsi: map[string]string{
			"GBP/USD": "74.2",
			"EUR/USD": "55.0",
			"USD/JPY": "27.8",
			"EUR/JPY": "48.3",
			"AUD/JPY": "61.9",
		},
	}
}

func (mc *MockClient) GetCandles(symbol, interval string, count int) ([]Candle, error) {
	base, ok := mc.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: unknown symbol %s", symbol)
	}

	prevClose := decimal.RequireFromString(base)
	currOpen := prevClose
	if offset, ok := mc.gaps[symbol]; ok {
		currOpen = prevClose.Add(decimal.RequireFromString(offset))
	}

	tick := decimal.RequireFromString("0.0005")
	if strings.Contains(symbol, "JPY") {
		tick = decimal.RequireFromString("0.05")
	}

	now := time.Now().UTC()
	candles := []Candle{
		{
			Datetime: now.Format("2006-01-02 15:04:05"),
			Open:     currOpen,
			High:     currOpen.Add(tick),
			Low:      currOpen.Sub(tick),
			Close:    currOpen.Add(tick),
		},
		{
			Datetime: now.Add(-4 * time.Hour).Format("2006-01-02 15:04:05"),
			Open:     prevClose.Sub(tick),
			High:     prevClose.Add(tick),
			Low:      prevClose.Sub(tick),
			Close:    prevClose,
		},
	}

	if count < len(candles) {
		candles = candles[:count]
	}
	return candles, nil
}

func (mc *MockClient) GetRSI(symbol, interval string) (decimal.NullDecimal, error) {
	v, ok := mc.rsi[symbol]
	if !ok {
		return decimal.NullDecimal{}, fmt.Errorf("mock: unknown symbol %s", symbol)
	}
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}, nil
}
