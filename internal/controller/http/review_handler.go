package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves course reviews under /reviews and recipe reviews
// under /recipereviews.
type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
	logger        *logger.Logger
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		logger:        logger,
	}
}

// CreateCourseReview godoc
// @Summary      Review a course
// @Description  One review per user and course
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCourseReviewRequest true "Review"
// @Success      201  {object}  dto.ReviewResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /reviews [post]
func (h *ReviewHandler) CreateCourseReview(c *gin.Context) {
	var req dto.CreateCourseReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewUseCase.CreateCourseReview(c.Request.Context(), actorFrom(c), req.CourseID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCourseReviewResponse(review))
}

// ListCourseReviews godoc
// @Summary      Reviews of a course
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        courseId path int true "Course ID"
// @Success      200  {array}   dto.ReviewResponse
// @Router       /reviews/course/{courseId} [get]
func (h *ReviewHandler) ListCourseReviews(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}
	reviews, err := h.reviewUseCase.ListCourseReviews(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(reviews, dto.ToCourseReviewResponse))
}

// UpdateCourseReview godoc
// @Summary      Edit a course review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Param        request body dto.UpdateReviewRequest true "Review"
// @Success      200  {object}  dto.ReviewResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) UpdateCourseReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewUseCase.UpdateCourseReview(c.Request.Context(), actorFrom(c), id, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCourseReviewResponse(review))
}

// DeleteCourseReview godoc
// @Summary      Delete a course review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      204
// @Failure      403  {object}  dto.MessageResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteCourseReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewUseCase.DeleteCourseReview(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRecipeReview godoc
// @Summary      Review a recipe
// @Description  One review per user and recipe
// @Tags         recipe-reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateRecipeReviewRequest true "Review"
// @Success      201  {object}  dto.ReviewResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /recipereviews [post]
func (h *ReviewHandler) CreateRecipeReview(c *gin.Context) {
	var req dto.CreateRecipeReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewUseCase.CreateRecipeReview(c.Request.Context(), actorFrom(c), req.RecipeID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecipeReviewResponse(review))
}

// ListRecipeReviews godoc
// @Summary      Reviews of a recipe
// @Tags         recipe-reviews
// @Produce      json
// @Security     BearerAuth
// @Param        recipeId path int true "Recipe ID"
// @Success      200  {array}   dto.ReviewResponse
// @Router       /recipereviews/recipe/{recipeId} [get]
func (h *ReviewHandler) ListRecipeReviews(c *gin.Context) {
	recipeID, ok := parseID(c, "recipeId")
	if !ok {
		return
	}
	reviews, err := h.reviewUseCase.ListRecipeReviews(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(reviews, dto.ToRecipeReviewResponse))
}

// UpdateRecipeReview godoc
// @Summary      Edit a recipe review
// @Tags         recipe-reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Param        request body dto.UpdateReviewRequest true "Review"
// @Success      200  {object}  dto.ReviewResponse
// @Router       /recipereviews/{id} [put]
func (h *ReviewHandler) UpdateRecipeReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewUseCase.UpdateRecipeReview(c.Request.Context(), actorFrom(c), id, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeReviewResponse(review))
}

// DeleteRecipeReview godoc
// @Summary      Delete a recipe review
// @Tags         recipe-reviews
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      204
// @Router       /recipereviews/{id} [delete]
func (h *ReviewHandler) DeleteRecipeReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.reviewUseCase.DeleteRecipeReview(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
