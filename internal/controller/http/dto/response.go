package dto

import (
	"time"

	"culinary-hub/internal/entity"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func NewList[E any, T any](items []E, total int64, page entity.Page, convert func(E) T) ListResponse[T] {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return ListResponse[T]{Items: out, Total: total, Limit: page.Limit, Offset: page.Offset}
}

func Map[E any, T any](items []E, convert func(E) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return out
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

type PostResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"userId"`
	AuthorName     string    `json:"authorName"`
	AuthorUsername string    `json:"authorUsername"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"imageUrl"`
	Rating         int       `json:"rating"`
	Comments       int       `json:"comments"`
	Views          int       `json:"views"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToPostResponse(p *entity.Post) PostResponse {
	return PostResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		AuthorName:     p.AuthorName,
		AuthorUsername: p.AuthorUsername,
		Title:          p.Title,
		Content:        p.Content,
		ImageURL:       p.ImageURL,
		Rating:         p.Rating,
		Comments:       p.Comments,
		Views:          p.Views,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type CommentResponse struct {
	ID              uint      `json:"id"`
	PostID          uint      `json:"postId"`
	UserID          uint      `json:"userId"`
	AuthorName      string    `json:"authorName"`
	AuthorUsername  string    `json:"authorUsername"`
	ParentCommentID *uint     `json:"parentCommentId"`
	Content         string    `json:"content"`
	Likes           int       `json:"likes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToCommentResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		UserID:          c.UserID,
		AuthorName:      c.AuthorName,
		AuthorUsername:  c.AuthorUsername,
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		Likes:           c.Likes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type CommentNodeResponse struct {
	CommentResponse
	Replies     []CommentNodeResponse `json:"replies"`
	MoreReplies bool                  `json:"moreReplies"`
}

func ToCommentTree(nodes []*entity.CommentNode) []CommentNodeResponse {
	out := make([]CommentNodeResponse, len(nodes))
	for i, n := range nodes {
		out[i] = CommentNodeResponse{
			CommentResponse: ToCommentResponse(n.Comment),
			Replies:         ToCommentTree(n.Replies),
			MoreReplies:     n.MoreReplies,
		}
	}
	return out
}

type PostDetailResponse struct {
	PostResponse
	LikedByViewer bool                  `json:"likedByViewer"`
	CommentTree   []CommentNodeResponse `json:"commentTree"`
}

func ToPostDetailResponse(d *entity.PostDetail) PostDetailResponse {
	return PostDetailResponse{
		PostResponse:  ToPostResponse(d.Post),
		LikedByViewer: d.LikedByViewer,
		CommentTree:   ToCommentTree(d.Comments),
	}
}

type CourseResponse struct {
	ID            uint      `json:"id"`
	ChefID        uint      `json:"chefId"`
	ChefName      string    `json:"chefName"`
	CourseName    string    `json:"courseName"`
	CourseImage   string    `json:"courseImage"`
	Ingredients   string    `json:"ingredients"`
	Difficulty    string    `json:"difficulty"`
	EstimatedTime string    `json:"estimatedTime"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ToCourseResponse(c *entity.Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		ChefID:        c.ChefID,
		ChefName:      c.ChefName,
		CourseName:    c.CourseName,
		CourseImage:   c.CourseImage,
		Ingredients:   c.Ingredients,
		Difficulty:    c.Difficulty,
		EstimatedTime: c.EstimatedTime,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
	}
}

type SectionResponse struct {
	ID           uint   `json:"id"`
	CourseID     uint   `json:"courseId"`
	SectionTitle string `json:"sectionTitle"`
	ContentType  string `json:"contentType"`
	Content      string `json:"content"`
	SectionOrder int    `json:"sectionOrder"`
}

func ToSectionResponse(s *entity.CourseSection) SectionResponse {
	return SectionResponse{
		ID:           s.ID,
		CourseID:     s.CourseID,
		SectionTitle: s.SectionTitle,
		ContentType:  string(s.ContentType),
		Content:      s.Content,
		SectionOrder: s.SectionOrder,
	}
}

type QuestionResponse struct {
	ID            uint   `json:"id"`
	CourseID      uint   `json:"courseId"`
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	QuestionOrder int    `json:"questionOrder"`
}

func ToQuestionResponse(q *entity.QuizQuestion) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		CourseID:      q.CourseID,
		Question:      q.Question,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		QuestionOrder: q.QuestionOrder,
	}
}

type ReviewResponse struct {
	ID           uint      `json:"id"`
	CourseID     uint      `json:"courseId,omitempty"`
	RecipeID     uint      `json:"recipeId,omitempty"`
	UserID       uint      `json:"userId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ReviewDate   time.Time `json:"reviewDate"`
}

func ToCourseReviewResponse(r *entity.CourseReview) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		CourseID:     r.CourseID,
		UserID:       r.UserID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		ReviewDate:   r.ReviewDate,
	}
}

func ToRecipeReviewResponse(r *entity.RecipeReview) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		RecipeID:     r.RecipeID,
		UserID:       r.UserID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		ReviewDate:   r.ReviewDate,
	}
}

type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type CourseDetailResponse struct {
	CourseResponse
	Sections  []SectionResponse  `json:"sections"`
	Questions []QuestionResponse `json:"quiz"`
	Reviews   []ReviewResponse   `json:"reviews"`
	Rating    RatingResponse     `json:"rating"`
}

func ToCourseDetailResponse(d *entity.CourseDetail) CourseDetailResponse {
	return CourseDetailResponse{
		CourseResponse: ToCourseResponse(d.Course),
		Sections:       Map(d.Sections, ToSectionResponse),
		Questions:      Map(d.Questions, ToQuestionResponse),
		Reviews:        Map(d.Reviews, ToCourseReviewResponse),
		Rating:         RatingResponse{Average: d.Rating.Average, Count: d.Rating.Count},
	}
}

type RecipeResponse struct {
	ID          uint      `json:"id"`
	ChefID      uint      `json:"chefId"`
	ChefName    string    `json:"chefName"`
	RecipeName  string    `json:"recipeName"`
	Cuisine     string    `json:"cuisine"`
	RecipeImage string    `json:"recipeImage"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToRecipeResponse(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          r.ID,
		ChefID:      r.ChefID,
		ChefName:    r.ChefName,
		RecipeName:  r.RecipeName,
		Cuisine:     r.Cuisine,
		RecipeImage: r.RecipeImage,
		Ingredients: r.IngredientList(),
		Steps:       r.StepList(),
		CreatedAt:   r.CreatedAt,
	}
}

type ChefResponse struct {
	ID                 uint      `json:"id"`
	UserID             uint      `json:"userId"`
	FullName           string    `json:"fullName"`
	Username           string    `json:"username"`
	SpecialtyCuisine   string    `json:"specialtyCuisine"`
	YearsOfExperience  int       `json:"yearsOfExperience"`
	CertificationName  string    `json:"certificationName"`
	CertificationImage string    `json:"certificationImage"`
	PortfolioLink      string    `json:"portfolioLink"`
	Biography          string    `json:"biography"`
	Rating             float64   `json:"rating"`
	TotalReviews       int       `json:"totalReviews"`
	ApprovedDate       time.Time `json:"approvedDate"`
}

func ToChefResponse(c *entity.Chef) ChefResponse {
	return ChefResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		FullName:           c.FullName,
		Username:           c.Username,
		SpecialtyCuisine:   c.SpecialtyCuisine,
		YearsOfExperience:  c.YearsOfExperience,
		CertificationName:  c.CertificationName,
		CertificationImage: c.CertificationImage,
		PortfolioLink:      c.PortfolioLink,
		Biography:          c.Biography,
		Rating:             c.Rating,
		TotalReviews:       c.TotalReviews,
		ApprovedDate:       c.ApprovedDate,
	}
}

type ApplicationResponse struct {
	ID                 uint       `json:"id"`
	UserID             uint       `json:"userId"`
	ApplicantName      string     `json:"applicantName"`
	SpecialtyCuisine   string     `json:"specialtyCuisine"`
	YearsOfExperience  int        `json:"yearsOfExperience"`
	CertificationName  string     `json:"certificationName"`
	CertificationImage string     `json:"certificationImage"`
	PortfolioLink      string     `json:"portfolioLink"`
	Biography          string     `json:"biography"`
	Status             string     `json:"status"`
	AdminRemarks       string     `json:"adminRemarks"`
	DateApplied        time.Time  `json:"dateApplied"`
	DateReviewed       *time.Time `json:"dateReviewed"`
}

func ToApplicationResponse(a *entity.ChefApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		ApplicantName:      a.ApplicantName,
		SpecialtyCuisine:   a.SpecialtyCuisine,
		YearsOfExperience:  a.YearsOfExperience,
		CertificationName:  a.CertificationName,
		CertificationImage: a.CertificationImage,
		PortfolioLink:      a.PortfolioLink,
		Biography:          a.Biography,
		Status:             string(a.Status),
		AdminRemarks:       a.AdminRemarks,
		DateApplied:        a.DateApplied,
		DateReviewed:       a.DateReviewed,
	}
}

type EnrollmentResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"userId"`
	CourseID    uint            `json:"courseId"`
	CourseName  string          `json:"courseName"`
	EnrolledAt  time.Time       `json:"enrolledAt"`
	Progress    entity.Progress `json:"progress" swaggertype:"number"`
	Completed   bool            `json:"completed"`
	CompletedAt *time.Time      `json:"completedAt"`
}

func ToEnrollmentResponse(e *entity.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		CourseName:  e.CourseName,
		EnrolledAt:  e.EnrolledAt,
		Progress:    e.Progress,
		Completed:   e.Completed,
		CompletedAt: e.CompletedAt,
	}
}
