package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/dberrors"
)

func TestMapRegistrationConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"duplicate pair",
			&pgconn.PgError{Code: dberrors.UniqueViolation, ConstraintName: dberrors.RegistrationsUserCourseKey},
			apperrors.ErrAlreadyRegistered,
		},
		{
			"course deleted",
			fmt.Errorf("insert: %w", &pgconn.PgError{Code: dberrors.ForeignKeyViolation, ConstraintName: dberrors.RegistrationsCourseFKey}),
			apperrors.ErrCourseNotFound,
		},
		{
			"user deleted",
			&pgconn.PgError{Code: dberrors.ForeignKeyViolation, ConstraintName: dberrors.RegistrationsUserFKey},
			apperrors.ErrUnauthenticated,
		},
		{
			"unknown constraint",
			&pgconn.PgError{Code: dberrors.ForeignKeyViolation, ConstraintName: "something_else_fkey"},
			nil,
		},
		{"connection error", errors.New("conn reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapRegistrationConstraintError(tt.err)
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if errors.Is(got, apperrors.ErrCourseNotFound) && tt.want != apperrors.ErrCourseNotFound {
				t.Fatal("only the course key may report a missing course")
			}
		})
	}
}
