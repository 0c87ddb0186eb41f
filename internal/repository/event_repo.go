package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"secure_finance_manager/internal/models"

	"github.com/google/uuid"
)

// EventRepository is the append-only audit log of mutations.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository { return &EventRepository{db: db} }

var _ Events = (*EventRepository)(nil)

const insertEventSQL = `
	INSERT INTO events (id, user_id, occurred_at, type, entity, entity_id, message)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventRepository) Append(ctx context.Context, e models.Event) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.UserID,
		formatTime(e.OccurredAt),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		strings.ToUpper(strings.TrimSpace(e.Entity)),
		e.EntityID,
		e.Description,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns the user's events filtered by [from, to] (inclusive), type and
// entity, ordered by time and then by insertion.
func (r *EventRepository) List(ctx context.Context, userID int, f EventFilter) ([]models.Event, error) {
	var (
		conds = []string{"user_id = ?"}
		args  = []any{userID}
	)

	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTime(f.To))
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if entity := strings.ToUpper(strings.TrimSpace(f.Entity)); entity != "" {
		conds = append(conds, "entity = ?")
		args = append(args, entity)
	}

	q := `SELECT id, user_id, occurred_at, type, entity, entity_id, message FROM events WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY occurred_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select events of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Event, 0, 64)
	for rows.Next() {
		var (
			ev       models.Event
			occurred string
		)
		if err := rows.Scan(&ev.EventID, &ev.UserID, &occurred, &ev.Type, &ev.Entity, &ev.EntityID, &ev.Description); err != nil {
			return nil, err
		}
		if ev.OccurredAt, err = parseTime(occurred); err != nil {
			return nil, fmt.Errorf("parse occurred_at of event %s: %w", ev.EventID, err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
