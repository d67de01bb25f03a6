package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/models/dto"
	"github.com/yigit/coursereg/internal/app/repositories"
	"github.com/yigit/coursereg/internal/app/repositories/memrepo"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
	"github.com/yigit/coursereg/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	repos         *repositories.Repositories
	auth          AuthService
	courses       CourseService
	registrations RegistrationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memrepo.New()
	authSvc, err := NewAuthService(repos.UserRepository, auth.NewPasswordHasher(bcrypt.MinCost), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	_, err = repos.CourseRepository.SeedIfEmpty(context.Background(), []*models.Course{
		{Code: "CS101", Title: "Intro to Programming", Seats: 50},
		{Code: "CS102", Title: "Computer Organization", Seats: 45},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &fixture{
		repos:         repos,
		auth:          authSvc,
		courses:       NewCourseService(repos.CourseRepository, repos.RegistrationRepository),
		registrations: NewRegistrationService(repos.CourseRepository, repos.RegistrationRepository, zerolog.Nop()),
	}
}

func (f *fixture) courseByCode(t *testing.T, code string) *models.Course {
	t.Helper()
	all, err := f.repos.CourseRepository.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range all {
		if c.Code == code {
			return c
		}
	}
	t.Fatalf("course %s not seeded", code)
	return nil
}

func TestSignupRequiresAllFields(t *testing.T) {
	tests := []struct {
		name string
		req  dto.SignupRequest
	}{
		{"missing name", dto.SignupRequest{Email: "a@x.com", Password: "pw123"}},
		{"blank name", dto.SignupRequest{Name: "   ", Email: "a@x.com", Password: "pw123"}},
		{"missing email", dto.SignupRequest{Name: "Ann", Password: "pw123"}},
		{"missing password", dto.SignupRequest{Name: "Ann", Email: "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.auth.Signup(context.Background(), &tt.req)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v, want validation failure", err)
			}
			if ok, _ := f.repos.UserRepository.EmailExists(context.Background(), "a@x.com"); ok {
				t.Fatal("no account should have been created")
			}
		})
	}
}

func TestSignupStoresHashAndRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Signup(ctx, &dto.SignupRequest{Name: " Ann ", Email: " A@X.com", Password: "pw123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Name != "Ann" || user.Email != "a@x.com" {
		t.Fatalf("unexpected normalization %+v", user)
	}

	stored, err := f.repos.UserRepository.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Password == "pw123" {
		t.Fatal("plaintext password stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw123")) != nil {
		t.Fatal("stored hash does not verify")
	}

	_, err = f.auth.Signup(ctx, &dto.SignupRequest{Name: "Other", Email: "a@x.com", Password: "zzz"})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate signup err = %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.auth.Signup(ctx, &dto.SignupRequest{Name: "Ann", Email: "a@x.com", Password: "pw123"}); err != nil {
		t.Fatal(err)
	}

	_, errUnknown := f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "pw123"})
	_, errWrong := f.auth.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "nope"})

	if !errors.Is(errUnknown, apperrors.ErrInvalidCredentials) || !errors.Is(errWrong, apperrors.ErrInvalidCredentials) {
		t.Fatalf("errors = %v / %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("messages differ: %q vs %q", errUnknown, errWrong)
	}

	user, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "pw123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "a@x.com" || user.Name != "Ann" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestRegisterOncePerCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs101 := f.courseByCode(t, "CS101")

	reg, err := f.registrations.Register(ctx, 7, cs101.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Course == nil || reg.Course.Code != "CS101" {
		t.Fatalf("registration course = %+v", reg.Course)
	}

	if _, err := f.registrations.Register(ctx, 7, cs101.ID); !errors.Is(err, apperrors.ErrAlreadyRegistered) {
		t.Fatalf("second Register err = %v", err)
	}

	n, _ := f.repos.RegistrationRepository.CountByUserAndCourse(ctx, 7, cs101.ID)
	if n != 1 {
		t.Fatalf("registration count = %d, want 1", n)
	}
}

func TestRegisterUnknownCourseWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.registrations.Register(ctx, 7, 9999); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("err = %v, want course not found", err)
	}
	regs, _ := f.repos.RegistrationRepository.GetByUserWithCourses(ctx, 7)
	if len(regs) != 0 {
		t.Fatalf("unexpected registrations %+v", regs)
	}
}

func TestRegisterRequiresUser(t *testing.T) {
	f := newFixture(t)
	cs101 := f.courseByCode(t, "CS101")
	if _, err := f.registrations.Register(context.Background(), 0, cs101.ID); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("err = %v", err)
	}
}

func TestListCatalogMarksRegistrations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cs102 := f.courseByCode(t, "CS102")

	anon, err := f.courses.ListCatalog(ctx, 0)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(anon.Courses) != 2 || len(anon.Registrations) != 0 {
		t.Fatalf("anonymous view = %+v", anon)
	}

	if _, err := f.registrations.Register(ctx, 3, cs102.ID); err != nil {
		t.Fatal(err)
	}

	view, err := f.courses.ListCatalog(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Registrations) != 1 || view.Registrations[0].Course.Code != "CS102" {
		t.Fatalf("registrations = %+v", view.Registrations)
	}
	for _, item := range view.Courses {
		if item.Registered != (item.Code == "CS102") {
			t.Errorf("%s registered = %v", item.Code, item.Registered)
		}
	}

	other, _ := f.courses.ListCatalog(ctx, 4)
	for _, item := range other.Courses {
		if item.Registered {
			t.Errorf("user 4 should see no registrations, %s marked", item.Code)
		}
	}
}

func TestGetCourse(t *testing.T) {
	f := newFixture(t)
	cs101 := f.courseByCode(t, "CS101")

	got, err := f.courses.GetCourse(context.Background(), cs101.ID)
	if err != nil || got.Code != "CS101" {
		t.Fatalf("GetCourse = %+v, %v", got, err)
	}
	if _, err := f.courses.GetCourse(context.Background(), -1); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("err = %v", err)
	}
}

// racingRegistrations reports no existing row and then loses the insert to a
// concurrent request, the way the unique constraint surfaces it.
type racingRegistrations struct {
	repositories.IRegistrationRepository
	createErr error
	creates   int
}

func (r *racingRegistrations) Exists(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (r *racingRegistrations) Create(context.Context, *models.Registration) error {
	r.creates++
	return r.createErr
}

func TestRegisterConstraintErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{"concurrent duplicate", apperrors.ErrAlreadyRegistered, apperrors.ErrAlreadyRegistered},
		{"course removed", apperrors.ErrCourseNotFound, apperrors.ErrCourseNotFound},
		{"account removed", apperrors.ErrUnauthenticated, apperrors.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			regs := &racingRegistrations{createErr: tt.createErr}
			svc := NewRegistrationService(f.repos.CourseRepository, regs, zerolog.Nop())

			_, err := svc.Register(context.Background(), 7, f.courseByCode(t, "CS101").ID)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if regs.creates != 1 {
				t.Fatalf("Create called %d times", regs.creates)
			}
		})
	}
}

func TestRegisterWrapsUnexpectedCreateError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	svc := NewRegistrationService(f.repos.CourseRepository, &racingRegistrations{createErr: boom}, zerolog.Nop())

	_, err := svc.Register(context.Background(), 7, f.courseByCode(t, "CS101").ID)
	if !errors.Is(err, boom) || apperrors.Is(err, apperrors.ErrAlreadyRegistered, apperrors.ErrCourseNotFound) {
		t.Fatalf("err = %v", err)
	}
}
