package service

import (
	"context"
	"strings"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

type ColourService struct {
	colours repository.Colours
	audit   *auditor
}

func NewColourService(colours repository.Colours, audit *auditor) *ColourService {
	return &ColourService{colours: colours, audit: audit}
}

func validateColour(c models.Colour) error {
	if err := requireName("colour", c.Name); err != nil {
		return err
	}
	if !hexColour.MatchString(c.Code) {
		return invalidf("colour code %q must look like #RRGGBB", c.Code)
	}
	return nil
}

func (s *ColourService) List(ctx context.Context) ([]models.Colour, error) {
	return s.colours.List(ctx)
}

func (s *ColourService) Get(ctx context.Context, id int) (models.Colour, error) {
	return s.colours.Get(ctx, id)
}

func (s *ColourService) Create(ctx context.Context, userID int, c models.Colour) (models.Colour, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if err := validateColour(c); err != nil {
		return models.Colour{}, err
	}
	id, err := s.colours.Create(ctx, c)
	if err != nil {
		return models.Colour{}, err
	}
	c.ID = id
	s.audit.record(ctx, userID, models.EventCreate, models.EntityColour, id)
	return c, nil
}

func (s *ColourService) Update(ctx context.Context, userID, id int, p models.ColourPatch) (models.Colour, error) {
	c, err := s.colours.Get(ctx, id)
	if err != nil {
		return models.Colour{}, err
	}
	p.Apply(&c)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if err := validateColour(c); err != nil {
		return models.Colour{}, err
	}
	if err := s.colours.Update(ctx, c); err != nil {
		return models.Colour{}, err
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntityColour, id)
	return c, nil
}

func (s *ColourService) Delete(ctx context.Context, userID, id int) error {
	if err := s.colours.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, userID, models.EventDelete, models.EntityColour, id)
	return nil
}
