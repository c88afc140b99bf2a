// Package services contains server-side business logic. UserService issues
// credentials; TaskService enforces ownership over tasks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// UserService registers users, checks their credentials and mints access
// tokens signed with the shared secret.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      auth.PasswordHasher
	codec                       *auth.TokenCodec
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		codec:                       auth.NewTokenCodec([]byte(cfg.SecretKey)),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// Register validates the input, stores a new user and returns a token for it.
func (s *UserService) Register(ctx context.Context, email, password string, name *string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	// The unique index backs this check up if two registrations race.
	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.WithDetail(common.ErrorAlreadyExists, "Email already registered")
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WithDetail(common.ErrorAlreadyExists, "Email already registered")
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorInternal, err)
	}

	return s.issue(user)
}

// Login checks the password and returns a fresh token. An unknown email and a
// wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WithDetail(common.ErrorUnauthorized, "Incorrect email or password")
		}
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrorInternal, err)
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, common.WithDetail(common.ErrorUnauthorized, "Incorrect email or password")
	}

	return s.issue(user)
}

// Refresh is not supported.
func (s *UserService) Refresh(ctx context.Context) (*AuthResult, error) {
	return nil, common.WithDetail(common.ErrorNotImplemented, "Refresh token functionality not yet implemented")
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.generateAccessToken(user)
	if err != nil {
		if errors.Is(err, common.ErrorConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &AuthResult{AccessToken: token, TokenType: common.BearerScheme, User: user}, nil
}

func (s *UserService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	return s.codec.Encode(jwt.MapClaims{
		"user_id": user.ID,
		"sub":     user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTokenValidityDuration).Unix(),
		"jti":     uuid.NewString(),
	})
}
