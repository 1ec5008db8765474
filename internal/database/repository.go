package database

import (
	"context"
	"fmt"

	"forex-gap-tracker/internal/gap"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository provides data access methods for gap events
type Repository struct {
	db     *DB
	logger zerolog.Logger
}

// NewRepository creates a new repository
func NewRepository(db *DB, logger zerolog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With().Str("component", "repository").Logger(),
	}
}

// HealthCheck performs a database health check
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.db.Pool.Ping(ctx)
}

// CreateGapEvent inserts a new gap event
func (r *Repository) CreateGapEvent(ctx context.Context, event *gap.GapEvent) error {
	query := `
		INSERT INTO gap_events (id, detected_at, pair, timeframe, gap_pips, rsi, direction, suggestion, outcome, chart_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Pool.Exec(
		ctx, query,
		event.ID, event.DetectedAt, event.Pair, event.Timeframe, event.GapPips,
		event.RSI, event.Direction, event.Suggestion, event.Outcome, event.ChartURL,
	)
	return err
}

// GetPendingEvents retrieves all events still awaiting an outcome, oldest
// first. Rows that fail to scan are skipped so one bad row never stalls
// the whole sweep.
func (r *Repository) GetPendingEvents(ctx context.Context) ([]*gap.GapEvent, error) {
	query := `
		SELECT id, detected_at, pair, timeframe, gap_pips, rsi, direction, suggestion, outcome, chart_url
		FROM gap_events
		WHERE outcome = 'PENDING'
		ORDER BY detected_at
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying pending events: %w", err)
	}
	defer rows.Close()

	var events []*gap.GapEvent
	for rows.Next() {
		event := &gap.GapEvent{}
		err := rows.Scan(
			&event.ID, &event.DetectedAt, &event.Pair, &event.Timeframe, &event.GapPips,
			&event.RSI, &event.Direction, &event.Suggestion, &event.Outcome, &event.ChartURL,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("Skipping malformed gap event row")
			continue
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// SetOutcome transitions an event from PENDING to a terminal outcome.
// The PENDING guard makes the transition one-way: a row that has already
// been settled is never touched again. Returns whether a row transitioned.
func (r *Repository) SetOutcome(ctx context.Context, id uuid.UUID, outcome gap.Outcome) (bool, error) {
	query := `
		UPDATE gap_events
		SET outcome = $2, resolved_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND outcome = 'PENDING'
	`
	tag, err := r.db.Pool.Exec(ctx, query, id, outcome)
	if err != nil {
		return false, fmt.Errorf("error updating outcome: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
