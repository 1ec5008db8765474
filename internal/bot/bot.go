package bot

import (
	"context"
	"sort"
	"time"

	"forex-gap-tracker/config"
	"forex-gap-tracker/internal/gap"
	"forex-gap-tracker/internal/notification"
	"forex-gap-tracker/internal/resolver"
	"forex-gap-tracker/internal/twelvedata"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EventStore defines the store operations the detection pass needs
type EventStore interface {
	CreateGapEvent(ctx context.Context, event *gap.GapEvent) error
}

// Bot runs one full cycle: a gap detection pass over every configured
// pair and timeframe, then one outcome-resolution sweep.
type Bot struct {
	cfg            config.GapConfig
	client         twelvedata.MarketDataClient
	store          EventStore
	notifier       *notification.Manager
	resolver       *resolver.Resolver
	evaluator      *gap.Evaluator
	notifyOutcomes bool
	logger         zerolog.Logger
	now            func() time.Time
}

func New(cfg config.GapConfig, client twelvedata.MarketDataClient, store EventStore, notifier *notification.Manager, res *resolver.Resolver, notifyOutcomes bool, logger zerolog.Logger) *Bot {
	return &Bot{
		cfg:            cfg,
		client:         client,
		store:          store,
		notifier:       notifier,
		resolver:       res,
		evaluator:      gap.NewEvaluator(cfg.MinGapPips, cfg.Timeframes),
		notifyOutcomes: notifyOutcomes,
		logger:         logger.With().Str("component", "bot").Logger(),
		now:            time.Now,
	}
}

// Run performs the full cycle and returns. Failures on one pair/timeframe
// never block the rest; the sweep always runs.
func (b *Bot) Run(ctx context.Context) error {
	timeframes := make([]string, 0, len(b.cfg.Timeframes))
	for tf := range b.cfg.Timeframes {
		timeframes = append(timeframes, tf)
	}
	sort.Strings(timeframes)

	for _, pair := range b.cfg.Pairs {
		for _, tf := range timeframes {
			b.checkGap(ctx, pair, tf)
		}
	}

	settled, err := b.resolver.Sweep(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Outcome sweep failed")
		return err
	}

	if b.notifier != nil && b.notifyOutcomes {
		for _, event := range settled {
			if err := b.notifier.SendOutcome(event); err != nil {
				b.logger.Error().Err(err).Str("pair", event.Pair).Msg("Outcome notification failed")
			}
		}
	}

	return nil
}

// checkGap evaluates one pair/timeframe and records an event when the gap
// clears the threshold.
func (b *Bot) checkGap(ctx context.Context, pair, timeframe string) {
	logger := b.logger.With().Str("pair", pair).Str("timeframe", timeframe).Logger()

	candles, err := b.client.GetCandles(pair, timeframe, 2)
	if err != nil {
		logger.Warn().Err(err).Msg("Candle fetch failed, skipping")
		return
	}

	measurement, ok := b.evaluator.Measure(pair, timeframe, candles)
	if !ok {
		logger.Debug().Msg("No qualifying gap")
		return
	}

	// RSI is only needed once a gap qualifies. An unavailable reading is
	// recorded as such, never a reason to drop the event.
	rsi, err := b.client.GetRSI(pair, timeframe)
	if err != nil {
		logger.Warn().Err(err).Msg("RSI unavailable")
		rsi = decimal.NullDecimal{}
	}

	event := b.evaluator.BuildEvent(measurement, rsi, b.now())

	if err := b.store.CreateGapEvent(ctx, event); err != nil {
		logger.Error().Err(err).Msg("Failed to persist gap event")
		return
	}

	// Warn level: repeated runs over an overlapping candle window record
	// the same real-world gap again, and that should be visible in logs.
	logger.Warn().
		Str("id", event.ID.String()).
		Str("direction", string(event.Direction)).
		Str("gap_pips", event.GapPips.StringFixed(1)).
		Str("rsi", event.RSILabel()).
		Msg("Gap event recorded")

	if b.notifier != nil {
		if err := b.notifier.SendGapAlert(event); err != nil {
			logger.Error().Err(err).Msg("Gap alert delivery failed")
		}
	}
}
