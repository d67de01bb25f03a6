package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/repositories"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
)

type registrationService struct {
	courseRepo       repositories.ICourseRepository
	registrationRepo repositories.IRegistrationRepository
	logger           zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	courseRepo repositories.ICourseRepository,
	registrationRepo repositories.IRegistrationRepository,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationService{
		courseRepo:       courseRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// Register records userID in courseID. The course must exist; an existing
// registration yields ErrAlreadyRegistered and writes nothing. Seats are not
// checked.
func (s *registrationService) Register(ctx context.Context, userID, courseID int64) (*models.Registration, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}

	exists, err := s.registrationRepo.Exists(ctx, userID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking registration: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyRegistered
	}

	registration := &models.Registration{UserID: userID, CourseID: course.ID}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyRegistered, apperrors.ErrCourseNotFound, apperrors.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating registration: %w", err)
	}
	registration.Course = course

	s.logger.Info().
		Int64("userID", userID).
		Str("courseCode", course.Code).
		Msg("User registered for course")
	return registration, nil
}
