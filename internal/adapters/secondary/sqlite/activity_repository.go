package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// ActivityLogRepository stores the append-only local activity trail.
type ActivityLogRepository struct {
	db *sql.DB
}

var _ ports.ActivityLogRepository = (*ActivityLogRepository)(nil)

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Append(ctx context.Context, e domain.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (ts, day, queue, delta, new_value, source, ticket_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Time.Format(time.RFC3339Nano), string(e.Day), string(e.Queue), e.Delta, e.NewValue, e.Source, e.TicketID)
	return err
}

func (r *ActivityLogRepository) ForDay(ctx context.Context, key domain.LocalDayKey) ([]domain.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, day, queue, delta, new_value, source, ticket_id
		FROM activity_log WHERE day = ? ORDER BY id
	`, string(key))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		var ts, day, queue string
		if err := rows.Scan(&e.ID, &ts, &day, &queue, &e.Delta, &e.NewValue, &e.Source, &e.TicketID); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, err
		}
		e.Time = t
		e.Day = domain.LocalDayKey(day)
		e.Queue = domain.QueueMode(queue)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ActivityLogRepository) ClearDay(ctx context.Context, key domain.LocalDayKey) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activity_log WHERE day = ?`, string(key))
	return err
}

func (r *ActivityLogRepository) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activity_log`)
	return err
}
