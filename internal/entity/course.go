package entity

import "time"

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentText, ContentImage, ContentVideo:
		return true
	}
	return false
}

type Course struct {
	ID            uint
	ChefID        uint
	ChefName      string
	CourseName    string
	CourseImage   string
	Ingredients   string
	Difficulty    string
	EstimatedTime string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CourseSection struct {
	ID           uint
	CourseID     uint
	SectionTitle string
	ContentType  ContentType
	Content      string
	SectionOrder int
}

type QuizQuestion struct {
	ID            uint
	CourseID      uint
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	QuestionOrder int
}

type CourseReview struct {
	ID           uint
	CourseID     uint
	UserID       uint
	ReviewerName string
	Rating       int
	Comment      string
	ReviewDate   time.Time
}

type RatingSummary struct {
	Average float64
	Count   int64
}

// CourseDetail is the full course view: ordered sections and quiz, reviews
// newest first and the rating aggregate.
type CourseDetail struct {
	Course    *Course
	Sections  []*CourseSection
	Questions []*QuizQuestion
	Reviews   []*CourseReview
	Rating    RatingSummary
}

func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
