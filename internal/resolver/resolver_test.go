package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"forex-gap-tracker/config"
	"forex-gap-tracker/internal/gap"
	"forex-gap-tracker/internal/twelvedata"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	pending      []*gap.GapEvent
	updates      map[uuid.UUID]gap.Outcome
	updateResult bool
}

func newFakeRepo(events ...*gap.GapEvent) *fakeRepo {
	return &fakeRepo{
		pending:      events,
		updates:      make(map[uuid.UUID]gap.Outcome),
		updateResult: true,
	}
}

func (f *fakeRepo) GetPendingEvents(ctx context.Context) ([]*gap.GapEvent, error) {
	return f.pending, nil
}

func (f *fakeRepo) SetOutcome(ctx context.Context, id uuid.UUID, outcome gap.Outcome) (bool, error) {
	f.updates[id] = outcome
	return f.updateResult, nil
}

type fakeClient struct {
	candles []twelvedata.Candle
	err     error
}

func (f *fakeClient) GetCandles(symbol, interval string, count int) ([]twelvedata.Candle, error) {
	return f.candles, f.err
}

func (f *fakeClient) GetRSI(symbol, interval string) (decimal.NullDecimal, error) {
	return decimal.NullDecimal{}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestResolver(repo *fakeRepo, client *fakeClient) *Resolver {
	cfg := config.GapConfig{
		WaitHours:        map[string]int{"4h": 6},
		DefaultWaitHours: 24,
	}
	r := New(repo, client, cfg, zerolog.Nop())
	r.now = func() time.Time { return testNow }
	return r
}

func pendingEvent(pair, timeframe string, direction gap.Direction, gapPips string, age time.Duration) *gap.GapEvent {
	return &gap.GapEvent{
		ID:         uuid.New(),
		DetectedAt: testNow.Add(-age),
		Pair:       pair,
		Timeframe:  timeframe,
		GapPips:    dec(gapPips),
		Direction:  direction,
		Outcome:    gap.OutcomePending,
	}
}

func latestCandle(open, close string) []twelvedata.Candle {
	return []twelvedata.Candle{{Open: dec(open), Close: dec(close)}}
}

func TestSweepGapUpFilled(t *testing.T) {
	// 25 pip gap up, 7h old on 4h: expected fill 1.3000 - 0.0025 = 1.2975
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2970")})

	settled, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if repo.updates[event.ID] != gap.OutcomeFilled {
		t.Errorf("Outcome = %s, want FILLED", repo.updates[event.ID])
	}
	if len(settled) != 1 || settled[0].Outcome != gap.OutcomeFilled {
		t.Errorf("Sweep should report one FILLED event, got %v", settled)
	}
}

func TestSweepGapUpNotFilled(t *testing.T) {
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2980")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if repo.updates[event.ID] != gap.OutcomeNotFilled {
		t.Errorf("Outcome = %s, want NOT_FILLED", repo.updates[event.ID])
	}
}

func TestSweepEqualityCountsAsFilled(t *testing.T) {
	// Close exactly at the expected fill price
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2975")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if repo.updates[event.ID] != gap.OutcomeFilled {
		t.Errorf("Close at expected fill should count as FILLED, got %s", repo.updates[event.ID])
	}
}

func TestSweepGapDownFilled(t *testing.T) {
	// Gap down fills when price retraces up through the gap
	event := pendingEvent("EUR/USD", "4h", gap.DirectionDown, "30", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.0800", "1.0835")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if repo.updates[event.ID] != gap.OutcomeFilled {
		t.Errorf("Outcome = %s, want FILLED", repo.updates[event.ID])
	}
}

func TestSweepGapDownYenPair(t *testing.T) {
	// 25 yen pips = 0.25: expected fill 150.00 + 0.25 = 150.25
	event := pendingEvent("USD/JPY", "4h", gap.DirectionDown, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("150.00", "150.20")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if repo.updates[event.ID] != gap.OutcomeNotFilled {
		t.Errorf("Outcome = %s, want NOT_FILLED", repo.updates[event.ID])
	}
}

func TestSweepTooYoungStaysPending(t *testing.T) {
	// 3h old on a 6h policy: no price fetch result matters
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 3*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2970")})

	settled, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Error("Too-young event must not be updated")
	}
	if len(settled) != 0 {
		t.Error("Too-young event must not be reported as settled")
	}
}

func TestSweepDailyWaitPolicy(t *testing.T) {
	// Any timeframe without an explicit policy waits the default 24h
	young := pendingEvent("GBP/USD", "1day", gap.DirectionUp, "25", 20*time.Hour)
	old := pendingEvent("GBP/USD", "1day", gap.DirectionUp, "25", 25*time.Hour)
	repo := newFakeRepo(young, old)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2970")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if _, touched := repo.updates[young.ID]; touched {
		t.Error("20h old daily event must stay pending")
	}
	if repo.updates[old.ID] != gap.OutcomeFilled {
		t.Errorf("25h old daily event should resolve, got %s", repo.updates[old.ID])
	}
}

func TestSweepNoPriceDataStaysPending(t *testing.T) {
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{err: errors.New("provider down")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep should not fail on missing price data: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Error("Event must stay pending when price data is unavailable")
	}
}

func TestSweepUnknownDirectionSkipped(t *testing.T) {
	event := pendingEvent("GBP/USD", "4h", "SIDEWAYS", "25", 7*time.Hour)
	repo := newFakeRepo(event)
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2970")})

	if _, err := r.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(repo.updates) != 0 {
		t.Error("Malformed direction must be skipped, not settled")
	}
}

func TestSweepAlreadySettledRowNotReported(t *testing.T) {
	// Repo reports no row transitioned (e.g. settled by an earlier writer)
	event := pendingEvent("GBP/USD", "4h", gap.DirectionUp, "25", 7*time.Hour)
	repo := newFakeRepo(event)
	repo.updateResult = false
	r := newTestResolver(repo, &fakeClient{candles: latestCandle("1.3000", "1.2970")})

	settled, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(settled) != 0 {
		t.Error("An event that did not transition must not be reported as settled")
	}
}
