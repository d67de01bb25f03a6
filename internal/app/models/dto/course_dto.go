package dto

import "github.com/yigit/coursereg/internal/app/models"

// CourseListItem is a catalog row with the viewer's registration state.
type CourseListItem struct {
	*models.Course
	Registered bool
}

// CatalogView is everything the catalog page renders.
type CatalogView struct {
	Courses []CourseListItem
	// Registrations of the current user with Course populated; empty when
	// nobody is logged in.
	Registrations []*models.Registration
}
