package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"secure_finance_manager/internal/models"

	"github.com/shopspring/decimal"
)

// EntryRepository scopes every statement by user_id and, except for
// GetByID and Amounts, by subcategory_id.
type EntryRepository struct {
	db     *sql.DB
	cipher Cipher
}

func NewEntryRepository(db *sql.DB, cipher Cipher) *EntryRepository {
	return &EntryRepository{db: db, cipher: cipher}
}

var _ Entries = (*EntryRepository)(nil)

const (
	entryColumns = `id, user_id, subcategory_id, name, description, amount, created_at, transaction_time, attachment`

	selectEntriesSQL    = `SELECT ` + entryColumns + ` FROM entries WHERE user_id = ? AND subcategory_id = ? ORDER BY transaction_time, id`
	selectEntrySQL      = `SELECT ` + entryColumns + ` FROM entries WHERE user_id = ? AND subcategory_id = ? AND id = ?`
	selectEntryByIDSQL  = `SELECT ` + entryColumns + ` FROM entries WHERE user_id = ? AND id = ?`
	insertEntrySQL      = `INSERT INTO entries (user_id, subcategory_id, name, description, amount, created_at, transaction_time, attachment) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	updateEntrySQL      = `UPDATE entries SET name = ?, description = ?, amount = ?, transaction_time = ?, attachment = ? WHERE user_id = ? AND subcategory_id = ? AND id = ?`
	deleteEntrySQL      = `DELETE FROM entries WHERE user_id = ? AND subcategory_id = ? AND id = ?`
	selectAmountsPrefix = `SELECT s.category_id, e.amount FROM entries e JOIN subcategories s ON s.id = e.subcategory_id AND s.user_id = e.user_id WHERE e.user_id = ?`
)

func (r *EntryRepository) scan(row rowScanner) (models.Entry, error) {
	var (
		e               models.Entry
		amount          string
		created, txTime string
		attachment      string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.SubcategoryID, &e.Name, &e.Description,
		&amount, &created, &txTime, &attachment); err != nil {
		return models.Entry{}, err
	}
	if err := decryptInPlace(r.cipher, &e.Name, &e.Description, &attachment); err != nil {
		return models.Entry{}, fmt.Errorf("entry %d: %w", e.ID, err)
	}

	var err error
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Entry{}, fmt.Errorf("parse amount of entry %d: %w", e.ID, err)
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return models.Entry{}, fmt.Errorf("parse created_at of entry %d: %w", e.ID, err)
	}
	if e.TransactionTime, err = parseTime(txTime); err != nil {
		return models.Entry{}, fmt.Errorf("parse transaction_time of entry %d: %w", e.ID, err)
	}
	if attachment != "" {
		if e.Attachment, err = base64.StdEncoding.DecodeString(attachment); err != nil {
			return models.Entry{}, fmt.Errorf("decode attachment of entry %d: %w", e.ID, err)
		}
	}
	return e, nil
}

// sealed returns the encrypted name, description and attachment of e.
func (r *EntryRepository) sealed(e models.Entry) ([]string, error) {
	var attachment string
	if len(e.Attachment) > 0 {
		attachment = base64.StdEncoding.EncodeToString(e.Attachment)
	}
	return encryptAll(r.cipher, e.Name, e.Description, attachment)
}

func (r *EntryRepository) list(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Entry, 0, 64)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EntryRepository) List(ctx context.Context, userID, subcategoryID int) ([]models.Entry, error) {
	out, err := r.list(ctx, selectEntriesSQL, userID, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("select entries of subcategory %d: %w", subcategoryID, err)
	}
	return out, nil
}

func (r *EntryRepository) get(ctx context.Context, id int, query string, args ...any) (models.Entry, error) {
	e, err := r.scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrNotFound
		}
		return models.Entry{}, fmt.Errorf("select entry %d: %w", id, err)
	}
	return e, nil
}

func (r *EntryRepository) Get(ctx context.Context, userID, subcategoryID, id int) (models.Entry, error) {
	return r.get(ctx, id, selectEntrySQL, userID, subcategoryID, id)
}

// GetByID looks an entry up without its parent, still scoped to the owner.
func (r *EntryRepository) GetByID(ctx context.Context, userID, id int) (models.Entry, error) {
	return r.get(ctx, id, selectEntryByIDSQL, userID, id)
}

func (r *EntryRepository) Create(ctx context.Context, e models.Entry) (int, error) {
	enc, err := r.sealed(e)
	if err != nil {
		return 0, err
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertEntrySQL,
		e.UserID,
		e.SubcategoryID,
		enc[0],
		enc[1],
		e.Amount.String(),
		formatTime(created),
		formatTime(e.TransactionTime),
		enc[2],
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", translate(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for entry: %w", err)
	}
	return int(id), nil
}

func (r *EntryRepository) Update(ctx context.Context, e models.Entry) error {
	enc, err := r.sealed(e)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateEntrySQL,
		enc[0],
		enc[1],
		e.Amount.String(),
		formatTime(e.TransactionTime),
		enc[2],
		e.UserID,
		e.SubcategoryID,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, translate(err))
	}
	return expectAffected(res)
}

func (r *EntryRepository) Delete(ctx context.Context, userID, subcategoryID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteEntrySQL, userID, subcategoryID, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return expectAffected(res)
}

// Amounts returns (category, amount) pairs for the user's entries whose
// transaction time lies in [from, to]. Zero bounds are ignored.
func (r *EntryRepository) Amounts(ctx context.Context, userID int, from, to time.Time) ([]models.AmountRow, error) {
	var (
		conds = []string{selectAmountsPrefix}
		args  = []any{userID}
	)
	if !from.IsZero() {
		conds = append(conds, "e.transaction_time >= ?")
		args = append(args, formatTime(from))
	}
	if !to.IsZero() {
		conds = append(conds, "e.transaction_time <= ?")
		args = append(args, formatTime(to))
	}
	q := strings.Join(conds, " AND ") + " ORDER BY s.category_id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select amounts of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.AmountRow, 0, 64)
	for rows.Next() {
		var (
			row    models.AmountRow
			amount string
		)
		if err := rows.Scan(&row.CategoryID, &amount); err != nil {
			return nil, err
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
