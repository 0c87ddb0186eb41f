package service

import (
	"context"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

// SubcategoryService checks that the parent category belongs to the caller
// before touching its subcategories.
type SubcategoryService struct {
	categories    repository.Categories
	subcategories repository.Subcategories
	audit         *auditor
}

func NewSubcategoryService(categories repository.Categories, subcategories repository.Subcategories, audit *auditor) *SubcategoryService {
	return &SubcategoryService{categories: categories, subcategories: subcategories, audit: audit}
}

func validateSubcategory(s models.Subcategory) error {
	if err := requireName("subcategory", s.Name); err != nil {
		return err
	}
	return validateColourRef(s.ColourID)
}

func (s *SubcategoryService) ownCategory(ctx context.Context, userID, categoryID int) error {
	_, err := s.categories.Get(ctx, userID, categoryID)
	return err
}

func (s *SubcategoryService) List(ctx context.Context, userID, categoryID int) ([]models.Subcategory, error) {
	if err := s.ownCategory(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	return s.subcategories.List(ctx, userID, categoryID)
}

func (s *SubcategoryService) Get(ctx context.Context, userID, categoryID, id int) (models.Subcategory, error) {
	return s.subcategories.Get(ctx, userID, categoryID, id)
}

func (s *SubcategoryService) Create(ctx context.Context, userID, categoryID int, sub models.Subcategory) (models.Subcategory, error) {
	sub.UserID = userID
	sub.CategoryID = categoryID
	if err := validateSubcategory(sub); err != nil {
		return models.Subcategory{}, err
	}
	if err := s.ownCategory(ctx, userID, categoryID); err != nil {
		return models.Subcategory{}, err
	}
	id, err := s.subcategories.Create(ctx, sub)
	if err != nil {
		return models.Subcategory{}, err
	}
	sub.ID = id
	s.audit.record(ctx, userID, models.EventCreate, models.EntitySubcategory, id)
	return sub, nil
}

func (s *SubcategoryService) Update(ctx context.Context, userID, categoryID, id int, p models.GroupPatch) (models.Subcategory, error) {
	sub, err := s.subcategories.Get(ctx, userID, categoryID, id)
	if err != nil {
		return models.Subcategory{}, err
	}
	p.ApplySubcategory(&sub)
	if err := validateSubcategory(sub); err != nil {
		return models.Subcategory{}, err
	}
	if err := s.subcategories.Update(ctx, sub); err != nil {
		return models.Subcategory{}, err
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntitySubcategory, id)
	return sub, nil
}

func (s *SubcategoryService) Delete(ctx context.Context, userID, categoryID, id int) error {
	if err := s.subcategories.Delete(ctx, userID, categoryID, id); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntitySubcategory, id)
	return nil
}
