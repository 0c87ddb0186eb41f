package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secure_finance_manager/internal/models"
)

type LabelRepository struct {
	db     *sql.DB
	cipher Cipher
}

func NewLabelRepository(db *sql.DB, cipher Cipher) *LabelRepository {
	return &LabelRepository{db: db, cipher: cipher}
}

var _ Labels = (*LabelRepository)(nil)

const (
	labelColumns = `id, user_id, name, description, colour_id`

	selectLabelsSQL = `SELECT ` + labelColumns + ` FROM labels WHERE user_id = ? ORDER BY id`
	selectLabelSQL  = `SELECT ` + labelColumns + ` FROM labels WHERE user_id = ? AND id = ?`
	insertLabelSQL  = `INSERT INTO labels (user_id, name, description, colour_id) VALUES (?, ?, ?, ?)`
	updateLabelSQL  = `UPDATE labels SET name = ?, description = ?, colour_id = ? WHERE user_id = ? AND id = ?`
	deleteLabelSQL  = `DELETE FROM labels WHERE user_id = ? AND id = ?`
)

func scanLabel(row rowScanner, c Cipher) (models.Label, error) {
	var (
		l      models.Label
		colour sql.NullInt64
	)
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &colour); err != nil {
		return models.Label{}, err
	}
	l.ColourID = idPtr(colour)
	if err := decryptInPlace(c, &l.Name, &l.Description); err != nil {
		return models.Label{}, fmt.Errorf("label %d: %w", l.ID, err)
	}
	return l, nil
}

func scanLabels(rows *sql.Rows, c Cipher) ([]models.Label, error) {
	defer rows.Close()

	out := make([]models.Label, 0, 16)
	for rows.Next() {
		l, err := scanLabel(rows, c)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LabelRepository) List(ctx context.Context, userID int) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, selectLabelsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select labels of user %d: %w", userID, err)
	}
	return scanLabels(rows, r.cipher)
}

func (r *LabelRepository) Get(ctx context.Context, userID, id int) (models.Label, error) {
	l, err := scanLabel(r.db.QueryRowContext(ctx, selectLabelSQL, userID, id), r.cipher)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Label{}, ErrNotFound
		}
		return models.Label{}, fmt.Errorf("select label %d: %w", id, err)
	}
	return l, nil
}

func (r *LabelRepository) Create(ctx context.Context, l models.Label) (int, error) {
	enc, err := encryptAll(r.cipher, l.Name, l.Description)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertLabelSQL, l.UserID, enc[0], enc[1], nullableID(l.ColourID))
	if err != nil {
		return 0, fmt.Errorf("insert label: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for label: %w", err)
	}
	return int(id), nil
}

func (r *LabelRepository) Update(ctx context.Context, l models.Label) error {
	enc, err := encryptAll(r.cipher, l.Name, l.Description)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateLabelSQL, enc[0], enc[1], nullableID(l.ColourID), l.UserID, l.ID)
	if err != nil {
		return fmt.Errorf("update label %d: %w", l.ID, translate(err))
	}
	return expectAffected(res)
}

func (r *LabelRepository) Delete(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteLabelSQL, userID, id)
	if err != nil {
		return fmt.Errorf("delete label %d: %w", id, err)
	}
	return expectAffected(res)
}
