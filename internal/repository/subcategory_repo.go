package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secure_finance_manager/internal/models"
)

// SubcategoryRepository scopes every statement by user_id and category_id.
type SubcategoryRepository struct {
	db     *sql.DB
	cipher Cipher
}

func NewSubcategoryRepository(db *sql.DB, cipher Cipher) *SubcategoryRepository {
	return &SubcategoryRepository{db: db, cipher: cipher}
}

var _ Subcategories = (*SubcategoryRepository)(nil)

const (
	subcategoryColumns = `id, user_id, category_id, name, description, colour_id`

	selectSubcategoriesSQL = `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE user_id = ? AND category_id = ? ORDER BY id`
	selectSubcategorySQL   = `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE user_id = ? AND category_id = ? AND id = ?`
	insertSubcategorySQL   = `INSERT INTO subcategories (user_id, category_id, name, description, colour_id) VALUES (?, ?, ?, ?, ?)`
	updateSubcategorySQL   = `UPDATE subcategories SET name = ?, description = ?, colour_id = ? WHERE user_id = ? AND category_id = ? AND id = ?`
	deleteSubcategorySQL   = `DELETE FROM subcategories WHERE user_id = ? AND category_id = ? AND id = ?`
)

func (r *SubcategoryRepository) scan(row rowScanner) (models.Subcategory, error) {
	var (
		s      models.Subcategory
		colour sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.CategoryID, &s.Name, &s.Description, &colour); err != nil {
		return models.Subcategory{}, err
	}
	s.ColourID = idPtr(colour)
	if err := decryptInPlace(r.cipher, &s.Name, &s.Description); err != nil {
		return models.Subcategory{}, fmt.Errorf("subcategory %d: %w", s.ID, err)
	}
	return s, nil
}

func (r *SubcategoryRepository) List(ctx context.Context, userID, categoryID int) ([]models.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx, selectSubcategoriesSQL, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("select subcategories of category %d: %w", categoryID, err)
	}
	defer rows.Close()

	out := make([]models.Subcategory, 0, 16)
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SubcategoryRepository) Get(ctx context.Context, userID, categoryID, id int) (models.Subcategory, error) {
	s, err := r.scan(r.db.QueryRowContext(ctx, selectSubcategorySQL, userID, categoryID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subcategory{}, ErrNotFound
		}
		return models.Subcategory{}, fmt.Errorf("select subcategory %d: %w", id, err)
	}
	return s, nil
}

func (r *SubcategoryRepository) Create(ctx context.Context, s models.Subcategory) (int, error) {
	enc, err := encryptAll(r.cipher, s.Name, s.Description)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertSubcategorySQL,
		s.UserID, s.CategoryID, enc[0], enc[1], nullableID(s.ColourID))
	if err != nil {
		return 0, fmt.Errorf("insert subcategory: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for subcategory: %w", err)
	}
	return int(id), nil
}

func (r *SubcategoryRepository) Update(ctx context.Context, s models.Subcategory) error {
	enc, err := encryptAll(r.cipher, s.Name, s.Description)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateSubcategorySQL,
		enc[0], enc[1], nullableID(s.ColourID), s.UserID, s.CategoryID, s.ID)
	if err != nil {
		return fmt.Errorf("update subcategory %d: %w", s.ID, translate(err))
	}
	return expectAffected(res)
}

func (r *SubcategoryRepository) Delete(ctx context.Context, userID, categoryID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteSubcategorySQL, userID, categoryID, id)
	if err != nil {
		return fmt.Errorf("delete subcategory %d: %w", id, err)
	}
	return expectAffected(res)
}
