package service

import (
	"context"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

type CategoryService struct {
	categories repository.Categories
	audit      *auditor
}

func NewCategoryService(categories repository.Categories, audit *auditor) *CategoryService {
	return &CategoryService{categories: categories, audit: audit}
}

func validateCategory(c models.Category) error {
	if err := requireName("category", c.Name); err != nil {
		return err
	}
	return validateColourRef(c.ColourID)
}

func (s *CategoryService) List(ctx context.Context, userID int) ([]models.Category, error) {
	return s.categories.List(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, userID, id int) (models.Category, error) {
	return s.categories.Get(ctx, userID, id)
}

func (s *CategoryService) Create(ctx context.Context, userID int, c models.Category) (models.Category, error) {
	c.UserID = userID
	if err := validateCategory(c); err != nil {
		return models.Category{}, err
	}
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		return models.Category{}, err
	}
	c.ID = id
	s.audit.record(ctx, userID, models.EventCreate, models.EntityCategory, id)
	return c, nil
}

// Update reads the stored row, merges the non-nil patch fields and writes it back.
func (s *CategoryService) Update(ctx context.Context, userID, id int, p models.GroupPatch) (models.Category, error) {
	c, err := s.categories.Get(ctx, userID, id)
	if err != nil {
		return models.Category{}, err
	}
	p.ApplyCategory(&c)
	if err := validateCategory(c); err != nil {
		return models.Category{}, err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return models.Category{}, err
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntityCategory, id)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id int) error {
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntityCategory, id)
	return nil
}
