package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// Constraint names declared in migrations/001_init.sql.
const (
	UsersEmailKey              = "users_email_key"
	RegistrationsUserCourseKey = "registrations_user_id_course_id_key"
	RegistrationsUserFKey      = "registrations_user_id_fkey"
	RegistrationsCourseFKey    = "registrations_course_id_fkey"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsForeignKeyConstraintError reports a reference to a missing parent row
// through the named foreign key.
func IsForeignKeyConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == ForeignKeyViolation && pgErr.ConstraintName == constraintName
}
