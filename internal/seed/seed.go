package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursereg/internal/app/models"
	appRepos "github.com/yigit/coursereg/internal/app/repositories"
)

// DefaultCourses returns the catalog loaded into an empty database.
func DefaultCourses() []*appModels.Course {
	return []*appModels.Course{
		{Code: "CS101", Title: "Intro to Programming", Description: "Basics of programming", Instructor: "Dr. Sharma", Seats: 50},
		{Code: "CS102", Title: "Computer Organization", Description: "CPU, memory, instruction cycles", Instructor: "Dr. Mehta", Seats: 45},
		{Code: "CS201", Title: "Data Structures", Description: "Arrays, lists, trees", Instructor: "Prof. Reddy", Seats: 40},
		{Code: "CS202", Title: "Algorithms", Description: "Sorting, searching, optimization", Instructor: "Prof. Asha", Seats: 35},
		{Code: "CS301", Title: "Web Development", Description: "Node + Express", Instructor: "Dr. Varma", Seats: 50},
		{Code: "CS302", Title: "Database Systems", Description: "SQL, MongoDB, transactions", Instructor: "Prof. Kiran", Seats: 40},
		{Code: "CS303", Title: "Software Engineering", Description: "Design, testing, agile", Instructor: "Dr. Nandini", Seats: 30},
		{Code: "CS304", Title: "Operating Systems", Description: "Processes, threads, memory management", Instructor: "Prof. Rajesh", Seats: 45},
		{Code: "CS305", Title: "Computer Networks", Description: "TCP/IP, routing, security", Instructor: "Dr. Sneha", Seats: 35},
		{Code: "CS306", Title: "Machine Learning", Description: "Supervised and unsupervised learning", Instructor: "Dr. Deepa", Seats: 40},
	}
}

// CreateDefaultData seeds the course catalog when it is empty. Running it
// again, or from several processes at once, never duplicates a course.
func CreateDefaultData(ctx context.Context, courseRepo appRepos.ICourseRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses)...")

	inserted, err := courseRepo.SeedIfEmpty(ctx, DefaultCourses())
	if err != nil {
		return fmt.Errorf("error seeding courses: %w", err)
	}

	if inserted > 0 {
		lgr.Info().Int64("count", inserted).Msg("Seeded courses")
	} else {
		lgr.Info().Msg("Courses already present, skipping seed")
	}
	return nil
}
