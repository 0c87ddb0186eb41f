package repository

import (
	"context"
	"database/sql"
	"fmt"

	"secure_finance_manager/internal/models"
)

// EntryLabelRepository manages the many-to-many rows between entries and labels.
type EntryLabelRepository struct {
	db     *sql.DB
	cipher Cipher
}

func NewEntryLabelRepository(db *sql.DB, cipher Cipher) *EntryLabelRepository {
	return &EntryLabelRepository{db: db, cipher: cipher}
}

var _ EntryLabels = (*EntryLabelRepository)(nil)

const (
	insertEntryLabelSQL = `INSERT INTO entry_labels (entry_id, label_id, user_id) VALUES (?, ?, ?)`
	deleteEntryLabelSQL = `DELETE FROM entry_labels WHERE user_id = ? AND entry_id = ? AND label_id = ?`
	selectEntryLabelSQL = `
		SELECT l.id, l.user_id, l.name, l.description, l.colour_id
		FROM labels l
		JOIN entry_labels el ON el.label_id = l.id AND el.user_id = l.user_id
		WHERE el.user_id = ? AND el.entry_id = ?
		ORDER BY l.id
	`
)

func (r *EntryLabelRepository) Attach(ctx context.Context, el models.EntryLabel) error {
	if _, err := r.db.ExecContext(ctx, insertEntryLabelSQL, el.EntryID, el.LabelID, el.UserID); err != nil {
		return fmt.Errorf("attach label %d to entry %d: %w", el.LabelID, el.EntryID, translate(err))
	}
	return nil
}

func (r *EntryLabelRepository) Detach(ctx context.Context, el models.EntryLabel) error {
	res, err := r.db.ExecContext(ctx, deleteEntryLabelSQL, el.UserID, el.EntryID, el.LabelID)
	if err != nil {
		return fmt.Errorf("detach label %d from entry %d: %w", el.LabelID, el.EntryID, err)
	}
	return expectAffected(res)
}

func (r *EntryLabelRepository) ListLabels(ctx context.Context, userID, entryID int) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, selectEntryLabelSQL, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("select labels of entry %d: %w", entryID, err)
	}
	return scanLabels(rows, r.cipher)
}
