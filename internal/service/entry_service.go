package service

import (
	"context"
	"time"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

const maxAttachmentBytes = 1 << 20 // 1 MB

// EntryService files entries under a subcategory and manages their labels.
type EntryService struct {
	subcategories repository.Subcategories
	entries       repository.Entries
	labels        repository.Labels
	entryLabels   repository.EntryLabels
	audit         *auditor
}

func NewEntryService(
	subcategories repository.Subcategories,
	entries repository.Entries,
	labels repository.Labels,
	entryLabels repository.EntryLabels,
	audit *auditor,
) *EntryService {
	return &EntryService{
		subcategories: subcategories,
		entries:       entries,
		labels:        labels,
		entryLabels:   entryLabels,
		audit:         audit,
	}
}

func validateEntry(e models.Entry) error {
	if err := requireName("entry", e.Name); err != nil {
		return err
	}
	if len(e.Attachment) > maxAttachmentBytes {
		return invalidf("attachment exceeds %d bytes", maxAttachmentBytes)
	}
	return nil
}

// ownPath confirms the subcategory exists under the category and both belong to userID.
func (s *EntryService) ownPath(ctx context.Context, userID int, path EntryPath) error {
	_, err := s.subcategories.Get(ctx, userID, path.CategoryID, path.SubcategoryID)
	return err
}

func (s *EntryService) List(ctx context.Context, userID int, path EntryPath) ([]models.Entry, error) {
	if err := s.ownPath(ctx, userID, path); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, userID, path.SubcategoryID)
}

func (s *EntryService) Get(ctx context.Context, userID int, path EntryPath, id int) (models.Entry, error) {
	if err := s.ownPath(ctx, userID, path); err != nil {
		return models.Entry{}, err
	}
	return s.entries.Get(ctx, userID, path.SubcategoryID, id)
}

// Create stores the entry and links the given labels. Repeated label ids are
// linked once. Every label is checked before the insert, then linked one by one.
func (s *EntryService) Create(ctx context.Context, userID int, path EntryPath, e models.Entry, labelIDs []int) (models.Entry, error) {
	e.UserID = userID
	e.SubcategoryID = path.SubcategoryID
	e.CreatedAt = time.Now().UTC()
	if e.TransactionTime.IsZero() {
		e.TransactionTime = e.CreatedAt
	}
	e.TransactionTime = e.TransactionTime.UTC()
	if err := validateEntry(e); err != nil {
		return models.Entry{}, err
	}
	if err := s.ownPath(ctx, userID, path); err != nil {
		return models.Entry{}, err
	}
	labelIDs = uniqueIDs(labelIDs)
	for _, labelID := range labelIDs {
		if _, err := s.labels.Get(ctx, userID, labelID); err != nil {
			return models.Entry{}, err
		}
	}

	id, err := s.entries.Create(ctx, e)
	if err != nil {
		return models.Entry{}, err
	}
	e.ID = id
	s.audit.record(ctx, userID, models.EventCreate, models.EntityEntry, id)

	for _, labelID := range labelIDs {
		if err := s.entryLabels.Attach(ctx, models.EntryLabel{EntryID: id, LabelID: labelID, UserID: userID}); err != nil {
			return e, err
		}
	}
	return e, nil
}

func (s *EntryService) Update(ctx context.Context, userID int, path EntryPath, id int, p models.EntryPatch) (models.Entry, error) {
	e, err := s.Get(ctx, userID, path, id)
	if err != nil {
		return models.Entry{}, err
	}
	p.Apply(&e)
	if err := validateEntry(e); err != nil {
		return models.Entry{}, err
	}
	if err := s.entries.Update(ctx, e); err != nil {
		return models.Entry{}, err
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntityEntry, id)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, userID int, path EntryPath, id int) error {
	if err := s.ownPath(ctx, userID, path); err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, userID, path.SubcategoryID, id); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntityEntry, id)
	return nil
}

func (s *EntryService) Labels(ctx context.Context, userID, entryID int) ([]models.Label, error) {
	if _, err := s.entries.GetByID(ctx, userID, entryID); err != nil {
		return nil, err
	}
	return s.entryLabels.ListLabels(ctx, userID, entryID)
}

func (s *EntryService) AttachLabel(ctx context.Context, userID, entryID, labelID int) error {
	if _, err := s.entries.GetByID(ctx, userID, entryID); err != nil {
		return err
	}
	if _, err := s.labels.Get(ctx, userID, labelID); err != nil {
		return err
	}
	if err := s.entryLabels.Attach(ctx, models.EntryLabel{EntryID: entryID, LabelID: labelID, UserID: userID}); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventCreate, models.EntityEntryLabel, entryID)
	return nil
}

func (s *EntryService) DetachLabel(ctx context.Context, userID, entryID, labelID int) error {
	if err := s.entryLabels.Detach(ctx, models.EntryLabel{EntryID: entryID, LabelID: labelID, UserID: userID}); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntityEntryLabel, entryID)
	return nil
}

// uniqueIDs drops repeated ids, keeping first-seen order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
