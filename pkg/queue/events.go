package queue

import "time"

type ChefApplicationReviewedEvent struct {
	ApplicationID uint      `json:"applicationId"`
	UserID        uint      `json:"userId"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	AdminRemarks  string    `json:"adminRemarks,omitempty"`
	ReviewedAt    time.Time `json:"reviewedAt"`
}

type EnrollmentCompletedEvent struct {
	EnrollmentID uint      `json:"enrollmentId"`
	UserID       uint      `json:"userId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	CourseID     uint      `json:"courseId"`
	CourseName   string    `json:"courseName"`
	CompletedAt  time.Time `json:"completedAt"`
}
