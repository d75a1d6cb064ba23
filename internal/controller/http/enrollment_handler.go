package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentUseCase usecase.EnrollmentUseCase
	logger            *logger.Logger
}

func NewEnrollmentHandler(enrollmentUseCase usecase.EnrollmentUseCase, logger *logger.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUseCase: enrollmentUseCase,
		logger:            logger,
	}
}

// Enroll godoc
// @Summary      Enroll in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.EnrollRequest true "Course"
// @Success      201  {object}  dto.EnrollmentResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /Enrollment [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}

	enrollment, err := h.enrollmentUseCase.Enroll(c.Request.Context(), actorFrom(c), req.CourseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment))
}

// MyEnrollments godoc
// @Summary      My enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EnrollmentResponse
// @Router       /Enrollment/me [get]
func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentUseCase.Mine(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(enrollments, dto.ToEnrollmentResponse))
}

// GetEnrollment godoc
// @Summary      My enrollment in a course
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        courseId path int true "Course ID"
// @Success      200  {object}  dto.EnrollmentResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /Enrollment/course/{courseId} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}
	enrollment, err := h.enrollmentUseCase.Get(c.Request.Context(), actorFrom(c), courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// UpdateProgress godoc
// @Summary      Update course progress
// @Description  Progress between 0 and 1 with two decimals; 1 completes the course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courseId path int true "Course ID"
// @Param        request body dto.ProgressRequest true "Progress"
// @Success      200  {object}  dto.EnrollmentResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /Enrollment/{courseId}/progress [put]
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}
	var req dto.ProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	enrollment, err := h.enrollmentUseCase.UpdateProgress(c.Request.Context(), actorFrom(c), courseID, *req.Progress)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnrollmentResponse(enrollment))
}

// Unenroll godoc
// @Summary      Leave a course
// @Tags         enrollments
// @Security     BearerAuth
// @Param        courseId path int true "Course ID"
// @Success      204
// @Failure      404  {object}  dto.MessageResponse
// @Router       /Enrollment/{courseId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}
	if err := h.enrollmentUseCase.Unenroll(c.Request.Context(), actorFrom(c), courseID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
