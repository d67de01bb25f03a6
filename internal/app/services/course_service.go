package services

import (
	"context"
	"fmt"

	"github.com/yigit/coursereg/internal/app/models"
	"github.com/yigit/coursereg/internal/app/models/dto"
	"github.com/yigit/coursereg/internal/app/repositories"
)

type courseService struct {
	courseRepo       repositories.ICourseRepository
	registrationRepo repositories.IRegistrationRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, registrationRepo repositories.IRegistrationRepository) CourseService {
	return &courseService{
		courseRepo:       courseRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *courseService) ListCatalog(ctx context.Context, userID int64) (*dto.CatalogView, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	view := &dto.CatalogView{
		Courses:       make([]dto.CourseListItem, 0, len(courses)),
		Registrations: []*models.Registration{},
	}

	registered := map[int64]bool{}
	if userID != 0 {
		view.Registrations, err = s.registrationRepo.GetByUserWithCourses(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("error listing registrations: %w", err)
		}
		for _, reg := range view.Registrations {
			registered[reg.CourseID] = true
		}
	}

	for _, c := range courses {
		view.Courses = append(view.Courses, dto.CourseListItem{Course: c, Registered: registered[c.ID]})
	}

	return view, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}
