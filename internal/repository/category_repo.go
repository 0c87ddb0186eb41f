package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secure_finance_manager/internal/models"
)

// CategoryRepository scopes every statement by user_id.
type CategoryRepository struct {
	db     *sql.DB
	cipher Cipher
}

func NewCategoryRepository(db *sql.DB, cipher Cipher) *CategoryRepository {
	return &CategoryRepository{db: db, cipher: cipher}
}

var _ Categories = (*CategoryRepository)(nil)

const (
	categoryColumns = `id, user_id, name, description, colour_id`

	selectCategoriesSQL = `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY id`
	selectCategorySQL   = `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? AND id = ?`
	insertCategorySQL   = `INSERT INTO categories (user_id, name, description, colour_id) VALUES (?, ?, ?, ?)`
	updateCategorySQL   = `UPDATE categories SET name = ?, description = ?, colour_id = ? WHERE user_id = ? AND id = ?`
	deleteCategorySQL   = `DELETE FROM categories WHERE user_id = ? AND id = ?`
)

func (r *CategoryRepository) scan(row rowScanner) (models.Category, error) {
	var (
		c      models.Category
		colour sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &colour); err != nil {
		return models.Category{}, err
	}
	c.ColourID = idPtr(colour)
	if err := decryptInPlace(r.cipher, &c.Name, &c.Description); err != nil {
		return models.Category{}, fmt.Errorf("category %d: %w", c.ID, err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, userID int) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectCategoriesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select categories of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 16)
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoryRepository) Get(ctx context.Context, userID, id int) (models.Category, error) {
	c, err := r.scan(r.db.QueryRowContext(ctx, selectCategorySQL, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, fmt.Errorf("select category %d: %w", id, err)
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (int, error) {
	enc, err := encryptAll(r.cipher, c.Name, c.Description)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertCategorySQL, c.UserID, enc[0], enc[1], nullableID(c.ColourID))
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for category: %w", err)
	}
	return int(id), nil
}

func (r *CategoryRepository) Update(ctx context.Context, c models.Category) error {
	enc, err := encryptAll(r.cipher, c.Name, c.Description)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateCategorySQL, enc[0], enc[1], nullableID(c.ColourID), c.UserID, c.ID)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, translate(err))
	}
	return expectAffected(res)
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteCategorySQL, userID, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return expectAffected(res)
}
