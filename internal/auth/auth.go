// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth is the credential store: it registers users, verifies
// passwords with bcrypt, and issues and checks HS256 bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quillpress/internal/apperr"
	"quillpress/internal/models"
	"quillpress/internal/store"
	"quillpress/internal/validate"
)

// Client-facing messages. Login deliberately uses one message for both an
// unknown email and a wrong password.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "User already exists"
	msgNotAuthorized      = "Not authorized to access this route"
)

// Users is the persistence the credential store needs. Lookups return
// (nil, nil) when no user matches.
type Users interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	Create(u *models.User) (*models.User, error)
}

// Config controls token issuance.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Service implements registration, login and token authentication.
type Service struct {
	users Users
	cfg   Config
	cost  int
	now   func() time.Time
}

// NewService creates a credential store over users.
func NewService(users Users, cfg Config) *Service {
	if cfg.Issuer == "" {
		cfg.Issuer = "quillpress"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &Service{users: users, cfg: cfg, cost: bcrypt.DefaultCost, now: time.Now}
}

// Session is returned by Register and Login. It serializes as the user
// object with an extra "token" field.
type Session struct {
	*models.User
	Token string `json:"token"`
}

// RegisterInput is the payload of a registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=50" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// Register creates a user with the default role and returns a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	u, err := s.users.Create(&models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperr.Conflict(msgEmailTaken)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.session(u)
}

// Login verifies credentials and returns a session.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	return s.session(u)
}

// Authenticate resolves a bearer token to the user it was issued for.
// The user must still exist.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, apperr.Unauthorized(msgNotAuthorized)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized(msgNotAuthorized)
	}

	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.Unauthorized(msgNotAuthorized)
	}
	return u, nil
}

// Me returns the user with the given ID.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

func (s *Service) session(u *models.User) (*Session, error) {
	token, err := s.issueToken(u)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
