package model

// All lists every model in foreign-key dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PostModel{},
		&CommentModel{},
		&PostLikeModel{},
		&CommentLikeModel{},
		&PostViewModel{},
		&CourseModel{},
		&CourseSectionModel{},
		&QuizQuestionModel{},
		&CourseReviewModel{},
		&RecipeModel{},
		&RecipeReviewModel{},
		&ChefModel{},
		&ChefApplicationModel{},
		&EnrollmentModel{},
	}
}
