package resolver

import (
	"context"
	"time"

	"forex-gap-tracker/config"
	"forex-gap-tracker/internal/gap"
	"forex-gap-tracker/internal/twelvedata"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventRepository defines the store operations the resolver needs
type EventRepository interface {
	GetPendingEvents(ctx context.Context) ([]*gap.GapEvent, error)
	SetOutcome(ctx context.Context, id uuid.UUID, outcome gap.Outcome) (bool, error)
}

// Resolver revisits pending gap events and settles them once enough time
// has passed to judge whether the gap filled.
type Resolver struct {
	repo             EventRepository
	client           twelvedata.MarketDataClient
	waitHours        map[string]int
	defaultWaitHours int
	logger           zerolog.Logger
	now              func() time.Time
}

func New(repo EventRepository, client twelvedata.MarketDataClient, cfg config.GapConfig, logger zerolog.Logger) *Resolver {
	return &Resolver{
		repo:             repo,
		client:           client,
		waitHours:        cfg.WaitHours,
		defaultWaitHours: cfg.DefaultWaitHours,
		logger:           logger.With().Str("component", "resolver").Logger(),
		now:              time.Now,
	}
}

// Sweep settles every pending event that is old enough. Events that are too
// young or whose price data is unavailable stay pending and are retried on
// the next sweep. Returns the events that transitioned this sweep.
func (r *Resolver) Sweep(ctx context.Context) ([]*gap.GapEvent, error) {
	events, err := r.repo.GetPendingEvents(ctx)
	if err != nil {
		return nil, err
	}

	var settled []*gap.GapEvent
	for _, event := range events {
		outcome, ok := r.resolve(event)
		if !ok {
			continue
		}

		updated, err := r.repo.SetOutcome(ctx, event.ID, outcome)
		if err != nil {
			r.logger.Error().Err(err).Str("id", event.ID.String()).Msg("Failed to record outcome")
			continue
		}
		if !updated {
			// Row was no longer pending; nothing to do
			continue
		}

		event.Outcome = outcome
		settled = append(settled, event)
		r.logger.Info().
			Str("pair", event.Pair).
			Str("timeframe", event.Timeframe).
			Str("outcome", string(outcome)).
			Str("gap_pips", event.GapPips.StringFixed(1)).
			Msg("Gap event resolved")
	}

	return settled, nil
}

// resolve decides the outcome for one event. The bool is false while the
// event must stay pending: age below the wait threshold, missing price
// data, or an unrecognized direction on the stored row.
func (r *Resolver) resolve(event *gap.GapEvent) (gap.Outcome, bool) {
	wait, ok := r.waitHours[event.Timeframe]
	if !ok {
		wait = r.defaultWaitHours
	}

	age := r.now().UTC().Sub(event.DetectedAt)
	if age < time.Duration(wait)*time.Hour {
		return "", false
	}

	candles, err := r.client.GetCandles(event.Pair, event.Timeframe, 1)
	if err != nil || len(candles) < 1 {
		r.logger.Warn().Err(err).
			Str("pair", event.Pair).
			Str("timeframe", event.Timeframe).
			Msg("No price data for outcome check, will retry")
		return "", false
	}

	latest := candles[0]
	offset := event.GapPips.Mul(gap.PipSize(event.Pair))

	// Equality counts as filled on both sides
	switch event.Direction {
	case gap.DirectionUp:
		expectedFill := latest.Open.Sub(offset)
		if latest.Close.LessThanOrEqual(expectedFill) {
			return gap.OutcomeFilled, true
		}
		return gap.OutcomeNotFilled, true
	case gap.DirectionDown:
		expectedFill := latest.Open.Add(offset)
		if latest.Close.GreaterThanOrEqual(expectedFill) {
			return gap.OutcomeFilled, true
		}
		return gap.OutcomeNotFilled, true
	default:
		r.logger.Error().
			Str("id", event.ID.String()).
			Str("direction", string(event.Direction)).
			Msg("Unknown direction on stored event, skipping")
		return "", false
	}
}
