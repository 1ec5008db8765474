package gap

import (
	"fmt"
	"strings"
	"time"

	"forex-gap-tracker/internal/twelvedata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Measurement is a qualifying gap before classification and persistence
type Measurement struct {
	Pair      string
	Timeframe string
	GapPips   decimal.Decimal
	Direction Direction
}

// Evaluator measures opening gaps against a pip threshold
type Evaluator struct {
	minGapPips decimal.Decimal
	intervals  map[string]string // timeframe -> chart interval code
}

func NewEvaluator(minGapPips float64, intervals map[string]string) *Evaluator {
	return &Evaluator{
		minGapPips: decimal.NewFromFloat(minGapPips),
		intervals:  intervals,
	}
}

// Measure computes the gap between the two most recent candles (newest
// first). Returns false when fewer than two candles are available or the
// gap is below the threshold; neither is an error.
func (e *Evaluator) Measure(pair, timeframe string, candles []twelvedata.Candle) (Measurement, bool) {
	if len(candles) < 2 {
		return Measurement{}, false
	}

	currOpen := candles[0].Open
	prevClose := candles[1].Close
	gapPips := currOpen.Sub(prevClose).Abs().Div(PipSize(pair))

	if gapPips.LessThan(e.minGapPips) {
		return Measurement{}, false
	}

	direction := DirectionDown
	if currOpen.GreaterThan(prevClose) {
		direction = DirectionUp
	}

	return Measurement{
		Pair:      pair,
		Timeframe: timeframe,
		GapPips:   gapPips,
		Direction: direction,
	}, true
}

// BuildEvent turns a measurement into a pending event ready to persist.
// An invalid RSI is recorded as-is; it never blocks event creation.
func (e *Evaluator) BuildEvent(m Measurement, rsi decimal.NullDecimal, now time.Time) *GapEvent {
	return &GapEvent{
		ID:         uuid.New(),
		DetectedAt: now.UTC(),
		Pair:       m.Pair,
		Timeframe:  m.Timeframe,
		GapPips:    m.GapPips,
		RSI:        rsi,
		Direction:  m.Direction,
		Suggestion: Suggest(m.Direction, rsi),
		Outcome:    OutcomePending,
		ChartURL:   e.ChartURL(m.Pair, m.Timeframe),
	}
}

// ChartURL builds a TradingView link for the pair and timeframe
func (e *Evaluator) ChartURL(pair, timeframe string) string {
	interval, ok := e.intervals[timeframe]
	if !ok {
		interval = "240"
	}
	symbol := strings.ReplaceAll(pair, "/", "")
	return fmt.Sprintf("https://www.tradingview.com/chart/?symbol=FX:%s&interval=%s", symbol, interval)
}
