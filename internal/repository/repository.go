package repository

import (
	"context"
	"database/sql"
	"time"

	"secure_finance_manager/internal/models"
)

// Cipher encrypts sensitive text columns before they are written and
// decrypts them after they are read.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id int) error
}

type Colours interface {
	List(ctx context.Context) ([]models.Colour, error)
	Get(ctx context.Context, id int) (models.Colour, error)
	Create(ctx context.Context, c models.Colour) (int, error)
	Update(ctx context.Context, c models.Colour) error
	Delete(ctx context.Context, id int) error
}

type Categories interface {
	List(ctx context.Context, userID int) ([]models.Category, error)
	Get(ctx context.Context, userID, id int) (models.Category, error)
	Create(ctx context.Context, c models.Category) (int, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, userID, id int) error
}

type Subcategories interface {
	List(ctx context.Context, userID, categoryID int) ([]models.Subcategory, error)
	Get(ctx context.Context, userID, categoryID, id int) (models.Subcategory, error)
	Create(ctx context.Context, s models.Subcategory) (int, error)
	Update(ctx context.Context, s models.Subcategory) error
	Delete(ctx context.Context, userID, categoryID, id int) error
}

type Labels interface {
	List(ctx context.Context, userID int) ([]models.Label, error)
	Get(ctx context.Context, userID, id int) (models.Label, error)
	Create(ctx context.Context, l models.Label) (int, error)
	Update(ctx context.Context, l models.Label) error
	Delete(ctx context.Context, userID, id int) error
}

type Entries interface {
	List(ctx context.Context, userID, subcategoryID int) ([]models.Entry, error)
	Get(ctx context.Context, userID, subcategoryID, id int) (models.Entry, error)
	GetByID(ctx context.Context, userID, id int) (models.Entry, error)
	Create(ctx context.Context, e models.Entry) (int, error)
	Update(ctx context.Context, e models.Entry) error
	Delete(ctx context.Context, userID, subcategoryID, id int) error
	Amounts(ctx context.Context, userID int, from, to time.Time) ([]models.AmountRow, error)
}

type EntryLabels interface {
	Attach(ctx context.Context, el models.EntryLabel) error
	Detach(ctx context.Context, el models.EntryLabel) error
	ListLabels(ctx context.Context, userID, entryID int) ([]models.Label, error)
}

// EventFilter narrows an event listing. Zero values mean "no bound".
type EventFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	Entity string
}

type Events interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, userID int, f EventFilter) ([]models.Event, error)
}

type Repository struct {
	Users         Users
	Colours       Colours
	Categories    Categories
	Subcategories Subcategories
	Labels        Labels
	Entries       Entries
	EntryLabels   EntryLabels
	Events        Events
}

func NewRepository(db *sql.DB, cipher Cipher) *Repository {
	return &Repository{
		Users:         NewUserRepository(db),
		Colours:       NewColourRepository(db),
		Categories:    NewCategoryRepository(db, cipher),
		Subcategories: NewSubcategoryRepository(db, cipher),
		Labels:        NewLabelRepository(db, cipher),
		Entries:       NewEntryRepository(db, cipher),
		EntryLabels:   NewEntryLabelRepository(db, cipher),
		Events:        NewEventRepository(db),
	}
}
