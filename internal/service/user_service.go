package service

import (
	"context"
	"strings"
	"time"

	"secure_finance_manager/internal/identity"
	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

// UserService keeps the identity cache in step with renames and deletes.
type UserService struct {
	users repository.Users
	cache *identity.Cache
	audit *auditor
}

func NewUserService(users repository.Users, cache *identity.Cache, audit *auditor) *UserService {
	return &UserService{users: users, cache: cache, audit: audit}
}

func newUser(username, hash string, in SignUpInput) models.User {
	return models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *UserService) Me(ctx context.Context, userID int) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateMe applies PATCH semantics: nil fields keep their stored value.
func (s *UserService) UpdateMe(ctx context.Context, userID int, p models.UserPatch) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	oldName := u.Username

	if p.Username != nil {
		trimmed := strings.TrimSpace(*p.Username)
		if err := validateUsername(trimmed); err != nil {
			return models.User{}, err
		}
		p.Username = &trimmed
	}
	p.Apply(&u)

	if p.Password != nil {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	if u.Username != oldName {
		s.cache.Rename(oldName, u.Username)
	}
	s.audit.record(ctx, userID, models.EventUpdate, models.EntityUser, userID)
	return u, nil
}

// DeleteMe removes the account with everything it owns.
func (s *UserService) DeleteMe(ctx context.Context, userID int) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.cache.Remove(u.Username)
	return nil
}
