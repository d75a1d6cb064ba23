package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/entity"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseUseCase usecase.CourseUseCase
	logger        *logger.Logger
}

func NewCourseHandler(courseUseCase usecase.CourseUseCase, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseUseCase: courseUseCase,
		logger:        logger,
	}
}

func courseInput(req dto.CourseRequest) usecase.CourseInput {
	return usecase.CourseInput{
		CourseName:    req.CourseName,
		Ingredients:   req.Ingredients,
		Difficulty:    req.Difficulty,
		EstimatedTime: req.EstimatedTime,
		Description:   req.Description,
	}
}

func sectionInput(req dto.SectionRequest) usecase.SectionInput {
	return usecase.SectionInput{
		SectionTitle: req.SectionTitle,
		ContentType:  entity.ContentType(req.ContentType),
		Content:      req.Content,
		SectionOrder: req.SectionOrder,
	}
}

func questionInput(req dto.QuestionRequest) usecase.QuestionInput {
	return usecase.QuestionInput{
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		QuestionOrder: req.QuestionOrder,
	}
}

// ListCourses godoc
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.CourseResponse]
// @Router       /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	page := pageFrom(c)
	courses, total, err := h.courseUseCase.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(courses, total, page, dto.ToCourseResponse))
}

// ListChefCourses godoc
// @Summary      List a chef's courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Chef ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.CourseResponse]
// @Router       /courses/chef/{id} [get]
func (h *CourseHandler) ListChefCourses(c *gin.Context) {
	chefID, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := pageFrom(c)
	courses, total, err := h.courseUseCase.ListByChef(c.Request.Context(), chefID, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(courses, total, page, dto.ToCourseResponse))
}

// CreateCourse godoc
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CourseRequest true "Course"
// @Success      201  {object}  dto.CourseResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseUseCase.Create(c.Request.Context(), actorFrom(c), courseInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCourseResponse(course))
}

// GetCourse godoc
// @Summary      Course detail
// @Description  Sections, quiz, reviews and rating summary
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      200  {object}  dto.CourseDetailResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.courseUseCase.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCourseDetailResponse(detail))
}

// UpdateCourse godoc
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        request body dto.CourseRequest true "Course"
// @Success      200  {object}  dto.CourseResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseUseCase.Update(c.Request.Context(), actorFrom(c), id, courseInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCourseResponse(course))
}

// DeleteCourse godoc
// @Summary      Delete a course
// @Description  Removes sections, quiz, reviews and enrollments with it
// @Tags         courses
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      204
// @Failure      403  {object}  dto.MessageResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.courseUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadCourseImage godoc
// @Summary      Upload a course image
// @Tags         courses
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        file formData file true "Image file"
// @Success      200  {object}  dto.UploadResponse
// @Router       /courses/{id}/image [post]
func (h *CourseHandler) UploadCourseImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.courseUseCase.UploadImage(c.Request.Context(), actorFrom(c), id, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}

// ListSections godoc
// @Summary      List course sections
// @Tags         sections
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      200  {array}   dto.SectionResponse
// @Router       /courses/{id}/sections [get]
func (h *CourseHandler) ListSections(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sections, err := h.courseUseCase.ListSections(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(sections, dto.ToSectionResponse))
}

// CreateSection godoc
// @Summary      Add a section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        request body dto.SectionRequest true "Section"
// @Success      201  {object}  dto.SectionResponse
// @Router       /courses/{id}/sections [post]
func (h *CourseHandler) CreateSection(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.SectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.courseUseCase.CreateSection(c.Request.Context(), actorFrom(c), courseID, sectionInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSectionResponse(section))
}

// UpdateSection godoc
// @Summary      Update a section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        sectionId path int true "Section ID"
// @Param        request body dto.SectionRequest true "Section"
// @Success      200  {object}  dto.SectionResponse
// @Router       /courses/{id}/sections/{sectionId} [put]
func (h *CourseHandler) UpdateSection(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseID(c, "sectionId")
	if !ok {
		return
	}
	var req dto.SectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.courseUseCase.UpdateSection(c.Request.Context(), actorFrom(c), courseID, sectionID, sectionInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSectionResponse(section))
}

// DeleteSection godoc
// @Summary      Delete a section
// @Tags         sections
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        sectionId path int true "Section ID"
// @Success      204
// @Router       /courses/{id}/sections/{sectionId} [delete]
func (h *CourseHandler) DeleteSection(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sectionID, ok := parseID(c, "sectionId")
	if !ok {
		return
	}
	if err := h.courseUseCase.DeleteSection(c.Request.Context(), actorFrom(c), courseID, sectionID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListQuestions godoc
// @Summary      List quiz questions
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      200  {array}   dto.QuestionResponse
// @Router       /courses/{id}/quiz [get]
func (h *CourseHandler) ListQuestions(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questions, err := h.courseUseCase.ListQuestions(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(questions, dto.ToQuestionResponse))
}

// CreateQuestion godoc
// @Summary      Add a quiz question
// @Description  correctAnswer must be one of A, B, C, D
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        request body dto.QuestionRequest true "Question"
// @Success      201  {object}  dto.QuestionResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /courses/{id}/quiz [post]
func (h *CourseHandler) CreateQuestion(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.courseUseCase.CreateQuestion(c.Request.Context(), actorFrom(c), courseID, questionInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToQuestionResponse(question))
}

// UpdateQuestion godoc
// @Summary      Update a quiz question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        questionId path int true "Question ID"
// @Param        request body dto.QuestionRequest true "Question"
// @Success      200  {object}  dto.QuestionResponse
// @Router       /courses/{id}/quiz/{questionId} [put]
func (h *CourseHandler) UpdateQuestion(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questionID, ok := parseID(c, "questionId")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.courseUseCase.UpdateQuestion(c.Request.Context(), actorFrom(c), courseID, questionID, questionInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToQuestionResponse(question))
}

// DeleteQuestion godoc
// @Summary      Delete a quiz question
// @Tags         quiz
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Param        questionId path int true "Question ID"
// @Success      204
// @Router       /courses/{id}/quiz/{questionId} [delete]
func (h *CourseHandler) DeleteQuestion(c *gin.Context) {
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questionID, ok := parseID(c, "questionId")
	if !ok {
		return
	}
	if err := h.courseUseCase.DeleteQuestion(c.Request.Context(), actorFrom(c), courseID, questionID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
