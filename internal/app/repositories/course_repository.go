package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/db"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/logger"
)

// seedLockKey identifies the advisory lock serializing catalog seeding
// across processes.
const seedLockKey int64 = 0x636f75727365 // "course"

var courseColumns = []string{"id", "code", "title", "description", "instructor", "seats", "created_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(&course.ID, &course.Code, &course.Title, &course.Description,
		&course.Instructor, &course.Seats, &course.CreatedAt)
}

// GetAll retrieves the whole catalog ordered by code
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := scanCourse(rows, course); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	if err := scanCourse(r.db.QueryRow(ctx, sql, args...), course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return countCourses(ctx, r.db, r.sb)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countCourses(ctx context.Context, q rowQuerier, sb squirrel.StatementBuilderType) (int64, error) {
	sql, args, err := sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// SeedIfEmpty inserts courses when the table is empty. The emptiness check and
// the insert share one transaction holding an advisory lock, so two starting
// processes cannot both seed.
func (r *CourseRepository) SeedIfEmpty(ctx context.Context, courses []*models.Course) (int64, error) {
	if len(courses) == 0 {
		return 0, nil
	}

	var inserted int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
			return fmt.Errorf("error acquiring seed lock: %w", err)
		}

		count, err := countCourses(ctx, tx, r.sb)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		insert := r.sb.Insert("courses").
			Columns("code", "title", "description", "instructor", "seats")
		for _, c := range courses {
			insert = insert.Values(c.Code, c.Title, c.Description, c.Instructor, c.Seats)
		}
		sql, args, err := insert.Suffix("ON CONFLICT (code) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("failed to build seed courses query: %w", err)
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error seeding courses: %w", err)
		}
		inserted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
