package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secure_finance_manager/internal/models"
)

// ColourRepository stores the global colour palette. Colours are not owned
// by a user.
type ColourRepository struct {
	db *sql.DB
}

func NewColourRepository(db *sql.DB) *ColourRepository {
	return &ColourRepository{db: db}
}

var _ Colours = (*ColourRepository)(nil)

const (
	selectColoursSQL = `SELECT id, name, code FROM colours ORDER BY id`
	selectColourSQL  = `SELECT id, name, code FROM colours WHERE id = ?`
	insertColourSQL  = `INSERT INTO colours (name, code) VALUES (?, ?)`
	updateColourSQL  = `UPDATE colours SET name = ?, code = ? WHERE id = ?`
	deleteColourSQL  = `DELETE FROM colours WHERE id = ?`
)

func (r *ColourRepository) List(ctx context.Context) ([]models.Colour, error) {
	rows, err := r.db.QueryContext(ctx, selectColoursSQL)
	if err != nil {
		return nil, fmt.Errorf("select colours: %w", err)
	}
	defer rows.Close()

	out := make([]models.Colour, 0, 16)
	for rows.Next() {
		var c models.Colour
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			return nil, fmt.Errorf("scan colour: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ColourRepository) Get(ctx context.Context, id int) (models.Colour, error) {
	var c models.Colour
	err := r.db.QueryRowContext(ctx, selectColourSQL, id).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Colour{}, ErrNotFound
		}
		return models.Colour{}, fmt.Errorf("select colour %d: %w", id, err)
	}
	return c, nil
}

func (r *ColourRepository) Create(ctx context.Context, c models.Colour) (int, error) {
	res, err := r.db.ExecContext(ctx, insertColourSQL, c.Name, c.Code)
	if err != nil {
		return 0, fmt.Errorf("insert colour %q: %w", c.Name, translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for colour %q: %w", c.Name, err)
	}
	return int(id), nil
}

func (r *ColourRepository) Update(ctx context.Context, c models.Colour) error {
	res, err := r.db.ExecContext(ctx, updateColourSQL, c.Name, c.Code, c.ID)
	if err != nil {
		return fmt.Errorf("update colour %d: %w", c.ID, translate(err))
	}
	return expectAffected(res)
}

func (r *ColourRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteColourSQL, id)
	if err != nil {
		return fmt.Errorf("delete colour %d: %w", id, err)
	}
	return expectAffected(res)
}
