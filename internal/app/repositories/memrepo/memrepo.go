// Package memrepo keeps users, courses and registrations in process memory.
// It backs the "memory" database driver and the service and controller tests.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/repositories"
	"github.com/yigit/coursereg/internal/pkg/apperrors"
)

// Store is the shared state of the three repositories.
type Store struct {
	mu            sync.RWMutex
	users         map[int64]*models.User
	courses       map[int64]*models.Course
	registrations []*models.Registration
	nextID        int64
	now           func() time.Time
}

// New returns repositories sharing one empty Store.
func New() *repositories.Repositories {
	s := NewStore()
	return &repositories.Repositories{
		UserRepository:         &UserRepository{s: s},
		CourseRepository:       &CourseRepository{s: s},
		RegistrationRepository: &RegistrationRepository{s: s},
	}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*models.User),
		courses: make(map[int64]*models.Course),
		now:     time.Now,
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// UserRepository is the in-memory IUserRepository.
type UserRepository struct{ s *Store }

// CourseRepository is the in-memory ICourseRepository.
type CourseRepository struct{ s *Store }

// RegistrationRepository is the in-memory IRegistrationRepository.
type RegistrationRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	user.ID = r.s.id()
	user.CreatedAt = r.s.now()
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *CourseRepository) GetAll(_ context.Context) ([]*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		out := *c
		courses = append(courses, &out)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (r *CourseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	out := *c
	return &out, nil
}

func (r *CourseRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.courses)), nil
}

func (r *CourseRepository) SeedIfEmpty(_ context.Context, courses []*models.Course) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.courses) > 0 {
		return 0, nil
	}

	seen := make(map[string]bool, len(courses))
	var inserted int64
	for _, c := range courses {
		if seen[c.Code] {
			continue
		}
		seen[c.Code] = true

		stored := *c
		stored.ID = r.s.id()
		stored.CreatedAt = r.s.now()
		r.s.courses[stored.ID] = &stored
		inserted++
	}
	return inserted, nil
}

func (r *RegistrationRepository) Create(_ context.Context, registration *models.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.courses[registration.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, reg := range r.s.registrations {
		if reg.UserID == registration.UserID && reg.CourseID == registration.CourseID {
			return apperrors.ErrAlreadyRegistered
		}
	}

	registration.ID = r.s.id()
	registration.CreatedAt = r.s.now()
	stored := *registration
	stored.Course = nil
	r.s.registrations = append(r.s.registrations, &stored)
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	n, err := r.CountByUserAndCourse(ctx, userID, courseID)
	return n > 0, err
}

func (r *RegistrationRepository) CountByUserAndCourse(_ context.Context, userID, courseID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, reg := range r.s.registrations {
		if reg.UserID == userID && reg.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *RegistrationRepository) GetByUserWithCourses(_ context.Context, userID int64) ([]*models.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*models.Registration{}
	for _, reg := range r.s.registrations {
		if reg.UserID != userID {
			continue
		}
		c, ok := r.s.courses[reg.CourseID]
		if !ok {
			continue
		}
		withCourse := *reg
		course := *c
		withCourse.Course = &course
		out = append(out, &withCourse)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Course.Code < out[j].Course.Code })
	return out, nil
}

var (
	_ repositories.IUserRepository         = (*UserRepository)(nil)
	_ repositories.ICourseRepository       = (*CourseRepository)(nil)
	_ repositories.IRegistrationRepository = (*RegistrationRepository)(nil)
)
