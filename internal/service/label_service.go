package service

import (
	"context"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

type LabelService struct {
	labels repository.Labels
	audit  *auditor
}

func NewLabelService(labels repository.Labels, audit *auditor) *LabelService {
	return &LabelService{labels: labels, audit: audit}
}

func validateLabel(l models.Label) error {
	if err := requireName("label", l.Name); err != nil {
		return err
	}
	return validateColourRef(l.ColourID)
}

func (s *LabelService) List(ctx context.Context, userID int) ([]models.Label, error) {
	return s.labels.List(ctx, userID)
}

func (s *LabelService) Get(ctx context.Context, userID, id int) (models.Label, error) {
	return s.labels.Get(ctx, userID, id)
}

func (s *LabelService) Create(ctx context.Context, userID int, l models.Label) (models.Label, error) {
	l.UserID = userID
	if err := validateLabel(l); err != nil {
		return models.Label{}, err
	}
	id, err := s.labels.Create(ctx, l)
	if err != nil {
		return models.Label{}, err
	}
	l.ID = id
	s.audit.record(ctx, userID, models.EventCreate, models.EntityLabel, id)
	return l, nil
}

func (s *LabelService) Update(ctx context.Context, userID, id int, p models.GroupPatch) (models.Label, error) {
	l, err := s.labels.Get(ctx, userID, id)
	if err != nil {
		return models.Label{}, err
	}
	p.ApplyLabel(&l)
	if err := validateLabel(l); err != nil {
		return models.Label{}, err
	}
	if err := s.labels.Update(ctx, l); err != nil {
		return models.Label{}, err
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntityLabel, id)
	return l, nil
}

func (s *LabelService) Delete(ctx context.Context, userID, id int) error {
	if err := s.labels.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntityLabel, id)
	return nil
}
