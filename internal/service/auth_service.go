package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"secure_finance_manager/internal/identity"
	"secure_finance_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNoSigningKey    = errors.New("token signing key is not configured")
)

// AuthConfig holds token settings read from configuration. Without a
// SigningKey no token is issued or accepted; Basic auth still works.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	return c
}

// AuthService handles user auth logic
type AuthService struct {
	users repository.Users
	cache *identity.Cache
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cache *identity.Cache, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, cache: cache, cfg: cfg.withDefaults()}
}

// SignUp hashes password, creates a new user and registers it in the identity cache.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (int, error) {
	username := strings.TrimSpace(in.Username)
	if err := validateUsername(username); err != nil {
		return 0, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	id, err := s.users.Create(ctx, newUser(username, hash, in))
	if err != nil {
		return 0, err
	}
	s.cache.Put(username, id)
	return id, nil
}

// Claims defines JWT claims. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns JWT
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	id, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return issueToken(s.cfg, username, id)
}

// ParseToken parses JWT and returns the username it was issued for.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if s.cfg.SigningKey == "" {
			return nil, ErrNoSigningKey
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// Authenticate checks HTTP Basic credentials and returns the caller's id.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return 0, ErrInvalidPassword
	}
	if id, ok := s.cache.Lookup(u.Username); ok {
		return id, nil
	}
	// created outside this process, e.g. by cmd/adduser
	s.cache.Put(u.Username, u.ID)
	return u.ID, nil
}

// Resolve maps a username to its id through the identity cache.
func (s *AuthService) Resolve(username string) (int, error) {
	id, ok := s.cache.Lookup(username)
	if !ok {
		return identity.UnknownID, ErrUserNotFound
	}
	return id, nil
}

func validateUsername(username string) error {
	if username == "" {
		return invalidf("username is required")
	}
	if strings.ContainsAny(username, ": \t\n") {
		return invalidf("username must not contain colons or whitespace")
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", invalidf("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func issueToken(cfg AuthConfig, username string, userID int) (string, error) {
	if cfg.SigningKey == "" {
		return "", ErrNoSigningKey
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(cfg.SigningKey))
}
