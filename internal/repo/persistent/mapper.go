package persistent

import (
	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:           m.ID,
		FullName:     m.FullName,
		Username:     m.Username,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Role:         entity.Role(m.Role),
		AvatarURL:    m.AvatarURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}
	return &model.UserModel{
		ID:           e.ID,
		FullName:     e.FullName,
		Username:     e.Username,
		Email:        e.Email,
		Phone:        e.Phone,
		PasswordHash: e.PasswordHash,
		Role:         string(e.Role),
		AvatarURL:    e.AvatarURL,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// authorNames reads the display names of a preloaded user, if any.
func authorNames(u *model.UserModel) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.FullName, u.Username
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}
	name, username := authorNames(m.User)
	return &entity.Post{
		ID:             m.ID,
		UserID:         m.UserID,
		AuthorName:     name,
		AuthorUsername: username,
		Title:          m.Title,
		Content:        m.Content,
		ImageURL:       m.ImageURL,
		Rating:         m.Rating,
		Comments:       m.Comments,
		Views:          m.Views,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}
	return &model.PostModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		ImageURL:  e.ImageURL,
		Rating:    e.Rating,
		Comments:  e.Comments,
		Views:     e.Views,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}
	name, username := authorNames(m.User)
	return &entity.Comment{
		ID:              m.ID,
		PostID:          m.PostID,
		UserID:          m.UserID,
		AuthorName:      name,
		AuthorUsername:  username,
		ParentCommentID: m.ParentCommentID,
		Content:         m.Content,
		Likes:           m.Likes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}
	return &model.CommentModel{
		ID:              e.ID,
		PostID:          e.PostID,
		UserID:          e.UserID,
		ParentCommentID: e.ParentCommentID,
		Content:         e.Content,
		Likes:           e.Likes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToCourseEntity(m *model.CourseModel) *entity.Course {
	if m == nil {
		return nil
	}
	name, _ := authorNames(m.Chef)
	return &entity.Course{
		ID:            m.ID,
		ChefID:        m.ChefID,
		ChefName:      name,
		CourseName:    m.CourseName,
		CourseImage:   m.CourseImage,
		Ingredients:   m.Ingredients,
		Difficulty:    m.Difficulty,
		EstimatedTime: m.EstimatedTime,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToCourseModel(e *entity.Course) *model.CourseModel {
	if e == nil {
		return nil
	}
	return &model.CourseModel{
		ID:            e.ID,
		ChefID:        e.ChefID,
		CourseName:    e.CourseName,
		CourseImage:   e.CourseImage,
		Ingredients:   e.Ingredients,
		Difficulty:    e.Difficulty,
		EstimatedTime: e.EstimatedTime,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToSectionEntity(m *model.CourseSectionModel) *entity.CourseSection {
	return &entity.CourseSection{
		ID:           m.ID,
		CourseID:     m.CourseID,
		SectionTitle: m.SectionTitle,
		ContentType:  entity.ContentType(m.ContentType),
		Content:      m.Content,
		SectionOrder: m.SectionOrder,
	}
}

func ToSectionModel(e *entity.CourseSection) *model.CourseSectionModel {
	return &model.CourseSectionModel{
		ID:           e.ID,
		CourseID:     e.CourseID,
		SectionTitle: e.SectionTitle,
		ContentType:  string(e.ContentType),
		Content:      e.Content,
		SectionOrder: e.SectionOrder,
	}
}

func ToQuestionEntity(m *model.QuizQuestionModel) *entity.QuizQuestion {
	return &entity.QuizQuestion{
		ID:            m.ID,
		CourseID:      m.CourseID,
		Question:      m.Question,
		OptionA:       m.OptionA,
		OptionB:       m.OptionB,
		OptionC:       m.OptionC,
		OptionD:       m.OptionD,
		CorrectAnswer: m.CorrectAnswer,
		QuestionOrder: m.QuestionOrder,
	}
}

func ToQuestionModel(e *entity.QuizQuestion) *model.QuizQuestionModel {
	return &model.QuizQuestionModel{
		ID:            e.ID,
		CourseID:      e.CourseID,
		Question:      e.Question,
		OptionA:       e.OptionA,
		OptionB:       e.OptionB,
		OptionC:       e.OptionC,
		OptionD:       e.OptionD,
		CorrectAnswer: e.CorrectAnswer,
		QuestionOrder: e.QuestionOrder,
	}
}

func ToCourseReviewEntity(m *model.CourseReviewModel) *entity.CourseReview {
	name, _ := authorNames(m.User)
	return &entity.CourseReview{
		ID:           m.ID,
		CourseID:     m.CourseID,
		UserID:       m.UserID,
		ReviewerName: name,
		Rating:       m.Rating,
		Comment:      m.Comment,
		ReviewDate:   m.ReviewDate,
	}
}

func ToRecipeEntity(m *model.RecipeModel) *entity.Recipe {
	if m == nil {
		return nil
	}
	name, _ := authorNames(m.Chef)
	return &entity.Recipe{
		ID:          m.ID,
		ChefID:      m.ChefID,
		ChefName:    name,
		RecipeName:  m.RecipeName,
		Cuisine:     m.Cuisine,
		RecipeImage: m.RecipeImage,
		Ingredients: m.Ingredients,
		Steps:       m.Steps,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToRecipeModel(e *entity.Recipe) *model.RecipeModel {
	if e == nil {
		return nil
	}
	return &model.RecipeModel{
		ID:          e.ID,
		ChefID:      e.ChefID,
		RecipeName:  e.RecipeName,
		Cuisine:     e.Cuisine,
		RecipeImage: e.RecipeImage,
		Ingredients: e.Ingredients,
		Steps:       e.Steps,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToRecipeReviewEntity(m *model.RecipeReviewModel) *entity.RecipeReview {
	name, _ := authorNames(m.User)
	return &entity.RecipeReview{
		ID:           m.ID,
		RecipeID:     m.RecipeID,
		UserID:       m.UserID,
		ReviewerName: name,
		Rating:       m.Rating,
		Comment:      m.Comment,
		ReviewDate:   m.ReviewDate,
	}
}

func ToChefEntity(m *model.ChefModel) *entity.Chef {
	if m == nil {
		return nil
	}
	name, username := authorNames(m.User)
	return &entity.Chef{
		ID:       m.ID,
		UserID:   m.UserID,
		FullName: name,
		Username: username,
		ChefProfile: entity.ChefProfile{
			SpecialtyCuisine:   m.SpecialtyCuisine,
			YearsOfExperience:  m.YearsOfExperience,
			CertificationName:  m.CertificationName,
			CertificationImage: m.CertificationImage,
			PortfolioLink:      m.PortfolioLink,
			Biography:          m.Biography,
		},
		Rating:       m.Rating,
		TotalReviews: m.TotalReviews,
		ApprovedDate: m.ApprovedDate,
	}
}

func ToApplicationEntity(m *model.ChefApplicationModel) *entity.ChefApplication {
	if m == nil {
		return nil
	}
	name, _ := authorNames(m.User)
	return &entity.ChefApplication{
		ID:            m.ID,
		UserID:        m.UserID,
		ApplicantName: name,
		ChefProfile: entity.ChefProfile{
			SpecialtyCuisine:   m.SpecialtyCuisine,
			YearsOfExperience:  m.YearsOfExperience,
			CertificationName:  m.CertificationName,
			CertificationImage: m.CertificationImage,
			PortfolioLink:      m.PortfolioLink,
			Biography:          m.Biography,
		},
		Status:       entity.ApplicationStatus(m.Status),
		AdminRemarks: m.AdminRemarks,
		DateApplied:  m.DateApplied,
		DateReviewed: m.DateReviewed,
	}
}

func ToApplicationModel(e *entity.ChefApplication) *model.ChefApplicationModel {
	return &model.ChefApplicationModel{
		ID:                 e.ID,
		UserID:             e.UserID,
		SpecialtyCuisine:   e.SpecialtyCuisine,
		YearsOfExperience:  e.YearsOfExperience,
		CertificationName:  e.CertificationName,
		CertificationImage: e.CertificationImage,
		PortfolioLink:      e.PortfolioLink,
		Biography:          e.Biography,
		Status:             string(e.Status),
		AdminRemarks:       e.AdminRemarks,
		DateApplied:        e.DateApplied,
		DateReviewed:       e.DateReviewed,
	}
}

// The numeric(3,2) column is mapped through Progress so reads never carry
// binary float noise.
func ToEnrollmentEntity(m *model.EnrollmentModel) *entity.Enrollment {
	if m == nil {
		return nil
	}
	e := &entity.Enrollment{
		ID:          m.ID,
		UserID:      m.UserID,
		CourseID:    m.CourseID,
		EnrolledAt:  m.EnrolledAt,
		Progress:    entity.ProgressFromFloat(m.Progress),
		Completed:   m.Completed,
		CompletedAt: m.CompletedAt,
	}
	if m.Course != nil {
		e.CourseName = m.Course.CourseName
	}
	return e
}
