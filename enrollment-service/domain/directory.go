package domain

import "context"

// UnknownName replaces names the directory could not provide in read views
const UnknownName = "Unknown"

// Student as returned by the student directory
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Course as returned by the course catalog
type Course struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolledCount"`
}

// StudentDirectory looks students up. A missing student is (nil, nil).
type StudentDirectory interface {
	GetStudent(ctx context.Context, id string) (*Student, error)
}

// CourseCatalog looks courses up. A missing course is (nil, nil).
type CourseCatalog interface {
	GetCourse(ctx context.Context, id string) (*Course, error)
}
