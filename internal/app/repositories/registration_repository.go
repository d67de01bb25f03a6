package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/dberrors"
	"github.com/yigit/coursereg/internal/pkg/logger"
)

// RegistrationRepository handles registration database operations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a registration. A concurrent duplicate that slipped past
// Exists surfaces as ErrAlreadyRegistered via the unique constraint.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	sql, args, err := r.sb.Insert("registrations").
		Columns("user_id", "course_id").
		Values(registration.UserID, registration.CourseID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create registration query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&registration.ID, &registration.CreatedAt)
	if err != nil {
		if mapped := mapRegistrationConstraintError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).
			Int64("userID", registration.UserID).
			Int64("courseID", registration.CourseID).
			Msg("Error executing create registration query")
		return fmt.Errorf("error creating registration: %w", err)
	}

	return nil
}

// mapRegistrationConstraintError translates constraint violations on
// registrations into sentinels, or returns nil.
func mapRegistrationConstraintError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, dberrors.RegistrationsUserCourseKey):
		return apperrors.ErrAlreadyRegistered
	case dberrors.IsForeignKeyConstraintError(err, dberrors.RegistrationsCourseFKey):
		return apperrors.ErrCourseNotFound
	case dberrors.IsForeignKeyConstraintError(err, dberrors.RegistrationsUserFKey):
		// The session outlived its account
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// Exists checks whether userID is registered for courseID
func (r *RegistrationRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	count, err := r.CountByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByUserAndCourse counts registrations for the pair.
func (r *RegistrationRepository) CountByUserAndCourse(ctx context.Context, userID, courseID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count registrations query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}

// GetByUserWithCourses returns userID's registrations joined with their courses
func (r *RegistrationRepository) GetByUserWithCourses(ctx context.Context, userID int64) ([]*models.Registration, error) {
	sql, args, err := r.sb.Select(
		"r.id", "r.user_id", "r.course_id", "r.created_at",
		"c.id", "c.code", "c.title", "c.description", "c.instructor", "c.seats", "c.created_at",
	).
		From("registrations r").
		Join("courses c ON c.id = r.course_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("c.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get registrations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get registrations query")
		return nil, fmt.Errorf("error querying registrations: %w", err)
	}
	defer rows.Close()

	registrations := []*models.Registration{}
	for rows.Next() {
		reg := &models.Registration{Course: &models.Course{}}
		c := reg.Course
		if err := rows.Scan(
			&reg.ID, &reg.UserID, &reg.CourseID, &reg.CreatedAt,
			&c.ID, &c.Code, &c.Title, &c.Description, &c.Instructor, &c.Seats, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return registrations, nil
}
