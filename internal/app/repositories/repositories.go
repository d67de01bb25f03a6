package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursereg/internal/app/models"
)

// IUserRepository defines the user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ICourseRepository defines the catalog operations
type ICourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Count(ctx context.Context) (int64, error)
	// SeedIfEmpty inserts courses only when the catalog is empty and returns
	// the number of rows written.
	SeedIfEmpty(ctx context.Context, courses []*models.Course) (int64, error)
}

// IRegistrationRepository defines the registration operations
type IRegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	Exists(ctx context.Context, userID, courseID int64) (bool, error)
	// GetByUserWithCourses returns the user's registrations with Course set.
	GetByUserWithCourses(ctx context.Context, userID int64) ([]*models.Registration, error)
	CountByUserAndCourse(ctx context.Context, userID, courseID int64) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         IUserRepository
	CourseRepository       ICourseRepository
	RegistrationRepository IRegistrationRepository
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		CourseRepository:       NewCourseRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
