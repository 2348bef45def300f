// Package postgres implements the event and user repositories on top of
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
)

// EventRepository is a PostgreSQL-backed domain.EventRepository. A serial
// seq column records insertion order so that List iterates in creation
// order, keeping insight tie-breaks deterministic.
type EventRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewEventRepository(db *sql.DB, logger *slog.Logger) *EventRepository {
	return &EventRepository{db: db, logger: logger.With("component", "postgres_event_repository")}
}

const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	severity    TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	lat         DOUBLE PRECISION NOT NULL,
	lng         DOUBLE PRECISION NOT NULL,
	score       DOUBLE PRECISION NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	impact      DOUBLE PRECISION NOT NULL,
	tags        TEXT[] NOT NULL
);`

// Migrate creates the events table if it does not exist yet.
func (r *EventRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, eventsSchema); err != nil {
		return fmt.Errorf("migrate events table: %w", err)
	}
	return nil
}

// Count returns the number of stored events; main uses it to decide
// whether to bootstrap the demo dataset.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

const eventColumns = `id, title, description, category, severity, created_at, lat, lng, score, confidence, impact, tags`

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Get(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, err
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		event.ID, event.Title, event.Description, string(event.Category), string(event.Severity),
		event.CreatedAt, event.Location.Lat, event.Location.Lng,
		event.Metrics.Score, event.Metrics.Confidence, event.Metrics.Impact,
		pq.Array(event.Tags),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			title = $2, description = $3, category = $4, severity = $5,
			lat = $6, lng = $7, score = $8, confidence = $9, impact = $10, tags = $11
		WHERE id = $1`,
		event.ID, event.Title, event.Description, string(event.Category), string(event.Severity),
		event.Location.Lat, event.Location.Lng,
		event.Metrics.Score, event.Metrics.Confidence, event.Metrics.Impact,
		pq.Array(event.Tags),
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireRow(res)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var e domain.Event
	var category, severity string
	var tags pq.StringArray

	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &category, &severity, &e.CreatedAt,
		&e.Location.Lat, &e.Location.Lng,
		&e.Metrics.Score, &e.Metrics.Confidence, &e.Metrics.Impact,
		&tags,
	)
	if err != nil {
		return domain.Event{}, err
	}

	e.Category = domain.Category(category)
	e.Severity = domain.Severity(severity)
	e.Tags = []string(tags)
	return e, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
