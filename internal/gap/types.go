package gap

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction of the price gap relative to the prior close
type Direction string

const (
	DirectionUp   Direction = "GAP_UP"
	DirectionDown Direction = "GAP_DOWN"
)

// Label returns the human-readable form used in alerts
func (d Direction) Label() string {
	return strings.ReplaceAll(string(d), "_", " ")
}

// Outcome of a detected gap event
type Outcome string

const (
	OutcomePending   Outcome = "PENDING"
	OutcomeFilled    Outcome = "FILLED"
	OutcomeNotFilled Outcome = "NOT_FILLED"
)

// GapEvent is a persisted gap detection. Outcome is the only mutable field:
// it moves from PENDING to FILLED or NOT_FILLED exactly once.
type GapEvent struct {
	ID         uuid.UUID           `json:"id"`
	DetectedAt time.Time           `json:"detected_at"`
	Pair       string              `json:"pair"`
	Timeframe  string              `json:"timeframe"`
	GapPips    decimal.Decimal     `json:"gap_pips"`
	RSI        decimal.NullDecimal `json:"rsi"`
	Direction  Direction           `json:"direction"`
	Suggestion string              `json:"suggestion"`
	Outcome    Outcome             `json:"outcome"`
	ChartURL   string              `json:"chart_url"`
	ResolvedAt *time.Time          `json:"resolved_at,omitempty"`
}

// RSILabel formats the RSI reading for alerts and storage display
func (e *GapEvent) RSILabel() string {
	if !e.RSI.Valid {
		return "N/A"
	}
	return e.RSI.Decimal.StringFixed(1)
}
