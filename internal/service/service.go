package service

import (
	"context"
	"time"

	"secure_finance_manager/internal/identity"
	"secure_finance_manager/internal/logger"
	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, in SignUpInput) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	Authenticate(ctx context.Context, username, password string) (int, error)
	Resolve(username string) (int, error)
}

// Users manages the authenticated caller's own account.
type Users interface {
	Me(ctx context.Context, userID int) (models.User, error)
	UpdateMe(ctx context.Context, userID int, p models.UserPatch) (models.User, error)
	DeleteMe(ctx context.Context, userID int) error
}

// Colours manages the global palette; userID is only used for auditing.
type Colours interface {
	List(ctx context.Context) ([]models.Colour, error)
	Get(ctx context.Context, id int) (models.Colour, error)
	Create(ctx context.Context, userID int, c models.Colour) (models.Colour, error)
	Update(ctx context.Context, userID, id int, p models.ColourPatch) (models.Colour, error)
	Delete(ctx context.Context, userID, id int) error
}

type Categories interface {
	List(ctx context.Context, userID int) ([]models.Category, error)
	Get(ctx context.Context, userID, id int) (models.Category, error)
	Create(ctx context.Context, userID int, c models.Category) (models.Category, error)
	Update(ctx context.Context, userID, id int, p models.GroupPatch) (models.Category, error)
	Delete(ctx context.Context, userID, id int) error
}

type Subcategories interface {
	List(ctx context.Context, userID, categoryID int) ([]models.Subcategory, error)
	Get(ctx context.Context, userID, categoryID, id int) (models.Subcategory, error)
	Create(ctx context.Context, userID, categoryID int, s models.Subcategory) (models.Subcategory, error)
	Update(ctx context.Context, userID, categoryID, id int, p models.GroupPatch) (models.Subcategory, error)
	Delete(ctx context.Context, userID, categoryID, id int) error
}

type Labels interface {
	List(ctx context.Context, userID int) ([]models.Label, error)
	Get(ctx context.Context, userID, id int) (models.Label, error)
	Create(ctx context.Context, userID int, l models.Label) (models.Label, error)
	Update(ctx context.Context, userID, id int, p models.GroupPatch) (models.Label, error)
	Delete(ctx context.Context, userID, id int) error
}

type Entries interface {
	List(ctx context.Context, userID int, path EntryPath) ([]models.Entry, error)
	Get(ctx context.Context, userID int, path EntryPath, id int) (models.Entry, error)
	Create(ctx context.Context, userID int, path EntryPath, e models.Entry, labelIDs []int) (models.Entry, error)
	Update(ctx context.Context, userID int, path EntryPath, id int, p models.EntryPatch) (models.Entry, error)
	Delete(ctx context.Context, userID int, path EntryPath, id int) error

	Labels(ctx context.Context, userID, entryID int) ([]models.Label, error)
	AttachLabel(ctx context.Context, userID, entryID, labelID int) error
	DetachLabel(ctx context.Context, userID, entryID, labelID int) error
}

// Reports exposes read-only aggregates over a user's entries.
type Reports interface {
	Summary(ctx context.Context, userID int, from, to time.Time) (models.Summary, error)
}

// EventLog exposes the audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, userID int, f LogFilter) ([]models.Event, error)
}

type Service struct {
	Authorization
	Users
	Colours
	Categories
	Subcategories
	Labels
	Entries
	Reports
	EventLog
}

// NewService wires the repository layer and the identity cache into concrete services.
func NewService(repos *repository.Repository, cache *identity.Cache, cfg AuthConfig, log *logger.Logger) *Service {
	audit := newAuditor(repos.Events, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, cache, cfg),
		Users:         NewUserService(repos.Users, cache, audit),
		Colours:       NewColourService(repos.Colours, audit),
		Categories:    NewCategoryService(repos.Categories, audit),
		Subcategories: NewSubcategoryService(repos.Categories, repos.Subcategories, audit),
		Labels:        NewLabelService(repos.Labels, audit),
		Entries:       NewEntryService(repos.Subcategories, repos.Entries, repos.Labels, repos.EntryLabels, audit),
		Reports:       NewReportService(repos.Entries),
		EventLog:      NewEventLogService(repos.Events),
	}
}
