package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

// HistoryRepository stores archived day records, one row per local day.
type HistoryRepository struct {
	db *sql.DB
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) All(ctx context.Context) (domain.DailyHistory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, chats, tickets, chat_hours, ticket_hours FROM history`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(domain.DailyHistory)
	for rows.Next() {
		var day string
		var rec domain.DayRecord
		if err := rows.Scan(&day, &rec.Chats, &rec.Tickets, &rec.ChatHours, &rec.TicketHours); err != nil {
			return nil, err
		}
		history[domain.LocalDayKey(day)] = rec
	}
	return history, rows.Err()
}

func (r *HistoryRepository) Day(ctx context.Context, key domain.LocalDayKey) (domain.DayRecord, bool, error) {
	var rec domain.DayRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT chats, tickets, chat_hours, ticket_hours FROM history WHERE day = ?
	`, string(key)).Scan(&rec.Chats, &rec.Tickets, &rec.ChatHours, &rec.TicketHours)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DayRecord{}, false, nil
	}
	if err != nil {
		return domain.DayRecord{}, false, err
	}
	return rec, true, nil
}

func (r *HistoryRepository) Upsert(ctx context.Context, key domain.LocalDayKey, rec domain.DayRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (day, chats, tickets, chat_hours, ticket_hours)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (day) DO UPDATE SET
			chats = excluded.chats,
			tickets = excluded.tickets,
			chat_hours = excluded.chat_hours,
			ticket_hours = excluded.ticket_hours
	`, string(key), rec.Chats, rec.Tickets, rec.ChatHours, rec.TicketHours)
	return err
}

// Replace swaps the entire history for the given map, atomically.
func (r *HistoryRepository) Replace(ctx context.Context, h domain.DailyHistory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return err
	}
	for day, rec := range h {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO history (day, chats, tickets, chat_hours, ticket_hours)
			VALUES (?, ?, ?, ?, ?)
		`, string(day), rec.Chats, rec.Tickets, rec.ChatHours, rec.TicketHours); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *HistoryRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
