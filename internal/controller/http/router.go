package http

import (
	"culinary-hub/internal/entity"
	"culinary-hub/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User         *UserHandler
	Post         *PostHandler
	Course       *CourseHandler
	Review       *ReviewHandler
	Recipe       *RecipeHandler
	Chef         *ChefHandler
	Enrollment   *EnrollmentHandler
	Notification *NotificationHandler
}

// RegisterRoutes mounts every endpoint on api. Only user registration is
// reachable without a token. limiters run after auth so they can key on the
// caller.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, auth gin.HandlerFunc, limiters ...gin.HandlerFunc) {
	register := append(append([]gin.HandlerFunc{}, limiters...), h.User.CreateUser)
	api.POST("/users", register...)

	protected := api.Group("")
	protected.Use(auth)
	protected.Use(limiters...)

	publisher := middleware.RequireRole(string(entity.RoleChef), string(entity.RoleAdmin))
	admin := middleware.RequireRole(string(entity.RoleAdmin))

	{
		protected.GET("/users", h.User.ListUsers)
		protected.GET("/users/:id", h.User.GetUser)
		protected.PUT("/users/:id", h.User.UpdateUser)
		protected.DELETE("/users/:id", h.User.DeleteUser)

		protected.GET("/profile", h.User.GetProfile)
		protected.PUT("/profile", h.User.UpdateProfile)
		protected.POST("/profile/avatar", h.User.UploadAvatar)
	}

	{
		protected.GET("/posts", h.Post.ListPosts)
		protected.POST("/posts", h.Post.CreatePost)
		protected.GET("/posts/user/:userId", h.Post.ListUserPosts)
		protected.GET("/posts/:id", h.Post.GetPost)
		protected.PUT("/posts/:id", h.Post.UpdatePost)
		protected.DELETE("/posts/:id", h.Post.DeletePost)
		protected.POST("/posts/:id/image", h.Post.UploadPostImage)
		protected.POST("/posts/:id/like", h.Post.LikePost)
		protected.DELETE("/posts/:id/like", h.Post.UnlikePost)
		protected.POST("/posts/:id/view", h.Post.RecordView)

		protected.GET("/posts/:id/comments", h.Post.ListComments)
		protected.POST("/posts/:id/comments", h.Post.CreateComment)
		protected.PUT("/posts/:id/comments/:commentId", h.Post.UpdateComment)
		protected.DELETE("/posts/:id/comments/:commentId", h.Post.DeleteComment)
		protected.POST("/posts/:id/comments/:commentId/like", h.Post.LikeComment)
		protected.DELETE("/posts/:id/comments/:commentId/like", h.Post.UnlikeComment)
	}

	{
		protected.GET("/courses", h.Course.ListCourses)
		protected.POST("/courses", publisher, h.Course.CreateCourse)
		protected.GET("/courses/chef/:id", h.Course.ListChefCourses)
		protected.GET("/courses/:id", h.Course.GetCourse)
		protected.PUT("/courses/:id", h.Course.UpdateCourse)
		protected.DELETE("/courses/:id", h.Course.DeleteCourse)
		protected.POST("/courses/:id/image", h.Course.UploadCourseImage)

		protected.GET("/courses/:id/sections", h.Course.ListSections)
		protected.POST("/courses/:id/sections", h.Course.CreateSection)
		protected.PUT("/courses/:id/sections/:sectionId", h.Course.UpdateSection)
		protected.DELETE("/courses/:id/sections/:sectionId", h.Course.DeleteSection)

		protected.GET("/courses/:id/quiz", h.Course.ListQuestions)
		protected.POST("/courses/:id/quiz", h.Course.CreateQuestion)
		protected.PUT("/courses/:id/quiz/:questionId", h.Course.UpdateQuestion)
		protected.DELETE("/courses/:id/quiz/:questionId", h.Course.DeleteQuestion)
	}

	{
		protected.POST("/reviews", h.Review.CreateCourseReview)
		protected.GET("/reviews/course/:courseId", h.Review.ListCourseReviews)
		protected.PUT("/reviews/:id", h.Review.UpdateCourseReview)
		protected.DELETE("/reviews/:id", h.Review.DeleteCourseReview)

		protected.POST("/recipereviews", h.Review.CreateRecipeReview)
		protected.GET("/recipereviews/recipe/:recipeId", h.Review.ListRecipeReviews)
		protected.PUT("/recipereviews/:id", h.Review.UpdateRecipeReview)
		protected.DELETE("/recipereviews/:id", h.Review.DeleteRecipeReview)
	}

	{
		protected.GET("/recipes", h.Recipe.ListRecipes)
		protected.POST("/recipes", publisher, h.Recipe.CreateRecipe)
		protected.GET("/recipes/chef/:id", h.Recipe.ListChefRecipes)
		protected.GET("/recipes/:id", h.Recipe.GetRecipe)
		protected.PUT("/recipes/:id", h.Recipe.UpdateRecipe)
		protected.DELETE("/recipes/:id", h.Recipe.DeleteRecipe)
		protected.POST("/recipes/:id/image", h.Recipe.UploadRecipeImage)
	}

	{
		protected.GET("/chefs", h.Chef.ListChefs)
		protected.GET("/chefs/user/:userId", h.Chef.GetChefByUser)
		protected.GET("/chefs/:id", h.Chef.GetChef)

		protected.POST("/ChefApplication", h.Chef.Apply)
		protected.GET("/ChefApplication/me", h.Chef.MyApplications)
		protected.POST("/ChefApplication/certificate", h.Chef.UploadCertificate)
	}

	{
		protected.POST("/Enrollment", h.Enrollment.Enroll)
		protected.GET("/Enrollment/me", h.Enrollment.MyEnrollments)
		protected.GET("/Enrollment/course/:courseId", h.Enrollment.GetEnrollment)
		protected.PUT("/Enrollment/:courseId/progress", h.Enrollment.UpdateProgress)
		protected.DELETE("/Enrollment/:courseId", h.Enrollment.Unenroll)
	}

	protected.GET("/notifications/ws", h.Notification.Stream)

	// Admin routes
	approval := protected.Group("/ChefApproval", admin)
	{
		approval.GET("", h.Chef.ListApplications)
		approval.GET("/:id", h.Chef.GetApplication)
		approval.POST("/:id/approve", h.Chef.ApproveApplication)
		approval.POST("/:id/reject", h.Chef.RejectApplication)
	}

	manageUsers := protected.Group("/ManageUser", admin)
	{
		manageUsers.GET("", h.User.ManageUsers)
		manageUsers.PUT("/:id/role", h.User.SetRole)
		manageUsers.DELETE("/:id", h.User.DeleteUser)
	}

	manageRecipes := protected.Group("/ManageRecipe", admin)
	{
		manageRecipes.GET("", h.Recipe.ManageRecipes)
		manageRecipes.DELETE("/:id", h.Recipe.DeleteRecipe)
	}
}
