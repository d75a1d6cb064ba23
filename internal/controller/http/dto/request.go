package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"culinary-hub/internal/entity"
)

type CreateUserRequest struct {
	FullName string `json:"fullName" binding:"required,notblank,max=150"`
	Username string `json:"username" binding:"required,notblank,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"max=30"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type UpdateUserRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,notblank,max=150"`
	Username *string `json:"username" binding:"omitempty,notblank,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=User Chef Admin"`
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,notblank,max=200"`
	Content *string `json:"content" binding:"omitempty,notblank"`
}

type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,notblank"`
	ParentCommentID *uint  `json:"parentCommentId"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

type CourseRequest struct {
	CourseName    string `json:"courseName" binding:"required,notblank,max=200"`
	Ingredients   string `json:"ingredients"`
	Difficulty    string `json:"difficulty" binding:"max=30"`
	EstimatedTime string `json:"estimatedTime" binding:"max=50"`
	Description   string `json:"description"`
}

type SectionRequest struct {
	SectionTitle string `json:"sectionTitle" binding:"required,notblank,max=200"`
	ContentType  string `json:"contentType" binding:"required,oneof=text image video"`
	Content      string `json:"content"`
	SectionOrder int    `json:"sectionOrder" binding:"gte=0"`
}

type QuestionRequest struct {
	Question      string `json:"question" binding:"required,notblank"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,answer"`
	QuestionOrder int    `json:"questionOrder" binding:"gte=0"`
}

type CreateCourseReviewRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

type CreateRecipeReviewRequest struct {
	RecipeID uint   `json:"recipeId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// TextList accepts either a JSON string in the stored format or an array of
// strings.
type TextList struct {
	Text  string
	Items []string
}

func (l *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = TextList{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		items := []string{}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("expected a list of strings: %w", err)
		}
		*l = TextList{Items: items}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = TextList{Text: text}
	return nil
}

type RecipeRequest struct {
	RecipeName  string   `json:"recipeName" binding:"required,notblank,max=200"`
	Cuisine     string   `json:"cuisine" binding:"max=100"`
	Ingredients TextList `json:"ingredients" swaggertype:"array,string"`
	Steps       TextList `json:"steps" swaggertype:"array,string"`
}

type ChefApplicationRequest struct {
	SpecialtyCuisine   string `json:"specialtyCuisine" binding:"required,notblank,max=100"`
	YearsOfExperience  int    `json:"yearsOfExperience" binding:"gte=0,lte=80"`
	CertificationName  string `json:"certificationName" binding:"max=200"`
	CertificationImage string `json:"certificationImage" binding:"omitempty,url,max=500"`
	PortfolioLink      string `json:"portfolioLink" binding:"omitempty,url,max=500"`
	Biography          string `json:"biography"`
}

func (r ChefApplicationRequest) Profile() entity.ChefProfile {
	return entity.ChefProfile{
		SpecialtyCuisine:   r.SpecialtyCuisine,
		YearsOfExperience:  r.YearsOfExperience,
		CertificationName:  r.CertificationName,
		CertificationImage: r.CertificationImage,
		PortfolioLink:      r.PortfolioLink,
		Biography:          r.Biography,
	}
}

type ReviewDecisionRequest struct {
	AdminRemarks string `json:"adminRemarks" binding:"max=2000"`
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// ProgressRequest accepts a number or a decimal string; values outside
// [0, 1] fail to decode.
type ProgressRequest struct {
	Progress *entity.Progress `json:"progress" binding:"required" swaggertype:"number"`
}
