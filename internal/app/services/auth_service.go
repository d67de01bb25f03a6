package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/models/dto"
	"github.com/yigit/coursereg/internal/app/repositories"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/auth"
)

type authService struct {
	userRepo repositories.IUserRepository
	hasher   *auth.PasswordHasher
	logger   zerolog.Logger
	// dummyHash is compared against when the email is unknown so both login
	// failures cost one bcrypt comparison.
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, hasher *auth.PasswordHasher, logger zerolog.Logger) (AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// normalizeEmail trims and lowercases an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. All three fields are required; an address that
// already has an account yields ErrEmailAlreadyExists.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	switch {
	case name == "":
		return nil, apperrors.NewValidationError("name", "All fields required")
	case email == "":
		return nil, apperrors.NewValidationError("email", "All fields required")
	case req.Password == "":
		return nil, apperrors.NewValidationError("password", "All fields required")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User signed up")
	return user, nil
}

// Login checks credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("error getting user by email: %w", err)
		}
		_, _ = s.hasher.Compare(s.dummyHash, req.Password)
		return nil, apperrors.ErrInvalidCredentials
	}

	ok, err := s.hasher.Compare(user.Password, req.Password)
	if err != nil {
		return nil, fmt.Errorf("error comparing password: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, nil
}
