package models

import "time"

// Registration links one user to one course. (UserID, CourseID) is unique.
type Registration struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
