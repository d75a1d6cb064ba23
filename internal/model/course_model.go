package model

import "time"

type CourseModel struct {
	ID            uint       `gorm:"primaryKey"`
	ChefID        uint       `gorm:"not null;index"`
	Chef          *UserModel `gorm:"foreignKey:ChefID;constraint:OnDelete:CASCADE"`
	CourseName    string     `gorm:"type:varchar(200);not null"`
	CourseImage   string     `gorm:"type:varchar(500)"`
	Ingredients   string     `gorm:"type:text"`
	Difficulty    string     `gorm:"type:varchar(30)"`
	EstimatedTime string     `gorm:"type:varchar(50)"`
	Description   string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time
}

func (CourseModel) TableName() string {
	return "courses"
}

type CourseSectionModel struct {
	ID           uint         `gorm:"primaryKey"`
	CourseID     uint         `gorm:"not null;index"`
	Course       *CourseModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	SectionTitle string       `gorm:"type:varchar(200);not null"`
	ContentType  string       `gorm:"type:varchar(10);not null;check:chk_course_sections_content_type,content_type IN ('text','image','video')"`
	Content      string       `gorm:"type:text"`
	SectionOrder int          `gorm:"not null;default:0"`
}

func (CourseSectionModel) TableName() string {
	return "course_sections"
}

type QuizQuestionModel struct {
	ID            uint         `gorm:"primaryKey"`
	CourseID      uint         `gorm:"not null;index"`
	Course        *CourseModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Question      string       `gorm:"type:text;not null"`
	OptionA       string       `gorm:"type:varchar(500);not null"`
	OptionB       string       `gorm:"type:varchar(500);not null"`
	OptionC       string       `gorm:"type:varchar(500);not null"`
	OptionD       string       `gorm:"type:varchar(500);not null"`
	CorrectAnswer string       `gorm:"type:char(1);not null;check:chk_quiz_questions_answer,correct_answer IN ('A','B','C','D')"`
	QuestionOrder int          `gorm:"not null;default:0"`
}

func (QuizQuestionModel) TableName() string {
	return "quiz_questions"
}

// CourseReviewModel keeps NO ACTION towards the reviewer so review history
// is never removed by deleting a user.
type CourseReviewModel struct {
	ID         uint         `gorm:"primaryKey"`
	CourseID   uint         `gorm:"not null;uniqueIndex:idx_course_reviews_course_user"`
	Course     *CourseModel `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	UserID     uint         `gorm:"not null;uniqueIndex:idx_course_reviews_course_user;index"`
	User       *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION"`
	Rating     int          `gorm:"not null;check:chk_course_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment    string       `gorm:"type:text"`
	ReviewDate time.Time    `gorm:"not null"`
}

func (CourseReviewModel) TableName() string {
	return "course_reviews"
}
