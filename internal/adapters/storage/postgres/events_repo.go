package postgres

import (
	"context"
	"database/sql"

	"github.com/RafaelMurad/PawCare/internal/domain/errs"
	"github.com/RafaelMurad/PawCare/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `id, user_id, dog_id, title, event_type, event_date,
	is_recurring, recurrence_pattern, recurrence_until, reminder_days_before,
	active, source_key, notes, created_at, updated_at`

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (
			id, user_id, dog_id, title, event_type, event_date,
			is_recurring, recurrence_pattern, recurrence_until,
			reminder_days_before, active, source_key, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		e.ID,
		e.UserID,
		toNullString(e.DogID),
		e.Title,
		e.Type,
		e.EventDate,
		e.IsRecurring,
		e.RecurrencePattern,
		toNullDate(e.RecurrenceUntil),
		e.ReminderDaysBefore,
		e.Active,
		toNullKey(e.SourceKey),
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return events.Event{}, errs.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET dog_id = $2,
			title = $3,
			event_type = $4,
			event_date = $5,
			is_recurring = $6,
			recurrence_pattern = $7,
			recurrence_until = $8,
			reminder_days_before = $9,
			active = $10,
			notes = $11,
			updated_at = $12
		WHERE id = $1
	`,
		e.ID,
		toNullString(e.DogID),
		e.Title,
		e.Type,
		e.EventDate,
		e.IsRecurring,
		e.RecurrencePattern,
		toNullDate(e.RecurrenceUntil),
		e.ReminderDaysBefore,
		e.Active,
		e.Notes,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) ListByUser(ctx context.Context, userID string) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1 ORDER BY event_date ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// UpsertBySourceKey usa el índice único parcial sobre source_key:
// si ya existe un evento compañero con esa clave se actualiza en el
// lugar, conservando id y created_at.
func (r *EventsRepo) UpsertBySourceKey(ctx context.Context, e events.Event) (events.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (
			id, user_id, dog_id, title, event_type, event_date,
			is_recurring, recurrence_pattern, recurrence_until,
			reminder_days_before, active, source_key, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (source_key) WHERE source_key IS NOT NULL
		DO UPDATE SET
			title = EXCLUDED.title,
			event_date = EXCLUDED.event_date,
			is_recurring = EXCLUDED.is_recurring,
			recurrence_pattern = EXCLUDED.recurrence_pattern,
			recurrence_until = EXCLUDED.recurrence_until,
			reminder_days_before = EXCLUDED.reminder_days_before,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
		RETURNING `+eventColumns,
		e.ID,
		e.UserID,
		toNullString(e.DogID),
		e.Title,
		e.Type,
		e.EventDate,
		e.IsRecurring,
		e.RecurrencePattern,
		toNullDate(e.RecurrenceUntil),
		e.ReminderDaysBefore,
		e.Active,
		toNullKey(e.SourceKey),
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return scanEvent(row)
}

func (r *EventsRepo) DeleteBySourceKey(ctx context.Context, sourceKey string) error {
	if sourceKey == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE source_key = $1`, sourceKey)
	return err
}

func (r *EventsRepo) ListActive(ctx context.Context) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE active ORDER BY event_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func scanEvent(row rowScanner) (events.Event, error) {
	var e events.Event
	var dogID, sourceKey sql.NullString
	var until sql.NullTime
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&dogID,
		&e.Title,
		&e.Type,
		&e.EventDate,
		&e.IsRecurring,
		&e.RecurrencePattern,
		&until,
		&e.ReminderDaysBefore,
		&e.Active,
		&sourceKey,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return events.Event{}, err
	}
	if dogID.Valid {
		s := dogID.String
		e.DogID = &s
	}
	e.RecurrenceUntil = fromNullDate(until)
	e.SourceKey = sourceKey.String
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]events.Event, error) {
	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// toNullKey guarda "" como NULL para que el índice único parcial no
// choque entre eventos manuales.
func toNullKey(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
