package model

import "time"

type EnrollmentModel struct {
	ID          uint         `gorm:"primaryKey"`
	UserID      uint         `gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	User        *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CourseID    uint         `gorm:"not null;uniqueIndex:idx_enrollments_user_course;index"`
	Course      *CourseModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	EnrolledAt  time.Time    `gorm:"not null"`
	Progress    float64      `gorm:"type:numeric(3,2);not null;default:0;check:chk_enrollments_progress,progress >= 0 AND progress <= 1"`
	Completed   bool         `gorm:"not null;default:false"`
	CompletedAt *time.Time
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
