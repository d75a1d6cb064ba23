package entity

import "time"

type Enrollment struct {
	ID          uint
	UserID      uint
	CourseID    uint
	CourseName  string
	EnrolledAt  time.Time
	Progress    Progress
	Completed   bool
	CompletedAt *time.Time
}
