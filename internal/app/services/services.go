package services

import (
	"context"

	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/models/dto"
)

// AuthService handles account creation and credential checks.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error)
}

// CourseService serves the catalog.
type CourseService interface {
	// ListCatalog returns every course; when userID is non-zero the user's
	// registrations are included and their courses marked.
	ListCatalog(ctx context.Context, userID int64) (*dto.CatalogView, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
}

// RegistrationService registers users for courses.
type RegistrationService interface {
	Register(ctx context.Context, userID, courseID int64) (*models.Registration, error)
}
