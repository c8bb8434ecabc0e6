// Package services implements the application operations on top of the
// repositories: validation, authorization checks, and the error taxonomy
// exposed to the transport layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/common"
	"taskboard/internal/server/auth"
	"taskboard/internal/server/config"
	"taskboard/internal/server/models"
	"taskboard/internal/server/repositories/repomanager"
)

const (
	maxFieldLength    = 255
	minPasswordLength = 6
)

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

func validateRegisterInput(in RegisterInput) error {
	verr := common.NewValidationError()

	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	} else if len(in.Name) > maxFieldLength {
		verr.Add("name", "must not be longer than 255 characters")
	}

	if strings.TrimSpace(in.Email) == "" {
		verr.Add("email", "is required")
	} else if len(in.Email) > maxFieldLength {
		verr.Add("email", "must not be longer than 255 characters")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.Add("email", "is not a valid email address")
	}

	if in.Password == "" {
		verr.Add("password", "is required")
	} else if len(in.Password) < minPasswordLength {
		verr.Add("password", "must be at least 6 characters")
	} else if in.Password != in.PasswordConfirmation {
		verr.Add("password", "does not match confirmation")
	}

	return verr.ErrOrNil()
}

// Register creates a user with the USER role and returns a token binding the
// new identity. The password is stored only as an irreversible hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {

	if err := validateRegisterInput(in); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			verr := common.NewValidationError()
			verr.Add("email", "has already been taken")
			return nil, "", verr
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrTokenIssuance
	}

	return user, token, nil
}

// Login exchanges a valid email/password pair for a signed token. A
// mismatch is reported as invalid credentials; only a failure of the
// signing step itself is a server fault.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrTokenIssuance
	}

	return token, nil
}

// Authenticate verifies a bearer token and loads the acting user.
// Verification is stateless; the token itself carries the identity claim.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	userID, err := auth.UserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}
