package models

import "time"

// Course is one catalog entry. Seats is informational and never decremented.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Instructor  string    `json:"instructor" db:"instructor"`
	Seats       int       `json:"seats" db:"seats"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
