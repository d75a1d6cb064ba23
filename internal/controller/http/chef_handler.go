package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/entity"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ChefHandler struct {
	chefUseCase usecase.ChefUseCase
	logger      *logger.Logger
}

func NewChefHandler(chefUseCase usecase.ChefUseCase, logger *logger.Logger) *ChefHandler {
	return &ChefHandler{
		chefUseCase: chefUseCase,
		logger:      logger,
	}
}

// ListChefs godoc
// @Summary      List chefs
// @Description  Highest rated first
// @Tags         chefs
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.ChefResponse]
// @Router       /chefs [get]
func (h *ChefHandler) ListChefs(c *gin.Context) {
	page := pageFrom(c)
	chefs, total, err := h.chefUseCase.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(chefs, total, page, dto.ToChefResponse))
}

// GetChef godoc
// @Summary      Get a chef
// @Tags         chefs
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Chef ID"
// @Success      200  {object}  dto.ChefResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /chefs/{id} [get]
func (h *ChefHandler) GetChef(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	chef, err := h.chefUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChefResponse(chef))
}

// GetChefByUser godoc
// @Summary      Get the chef profile of a user
// @Tags         chefs
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {object}  dto.ChefResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /chefs/user/{userId} [get]
func (h *ChefHandler) GetChefByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	chef, err := h.chefUseCase.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChefResponse(chef))
}

// Apply godoc
// @Summary      Apply to become a chef
// @Tags         chef-applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ChefApplicationRequest true "Application"
// @Success      201  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /ChefApplication [post]
func (h *ChefHandler) Apply(c *gin.Context) {
	var req dto.ChefApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.chefUseCase.Apply(c.Request.Context(), actorFrom(c), req.Profile())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// MyApplications godoc
// @Summary      My chef applications
// @Tags         chef-applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.ApplicationResponse
// @Router       /ChefApplication/me [get]
func (h *ChefHandler) MyApplications(c *gin.Context) {
	apps, err := h.chefUseCase.MyApplications(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Map(apps, dto.ToApplicationResponse))
}

// UploadCertificate godoc
// @Summary      Upload a certification image
// @Description  Returns a URL to pass as certificationImage
// @Tags         chef-applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Image file"
// @Success      200  {object}  dto.UploadResponse
// @Router       /ChefApplication/certificate [post]
func (h *ChefHandler) UploadCertificate(c *gin.Context) {
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.chefUseCase.UploadCertificate(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}

// ListApplications godoc
// @Summary      List chef applications (admin)
// @Tags         chef-approval
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Pending, Approved or Rejected"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.ApplicationResponse]
// @Failure      403  {object}  dto.MessageResponse
// @Router       /ChefApproval [get]
func (h *ChefHandler) ListApplications(c *gin.Context) {
	page := pageFrom(c)
	status := entity.ApplicationStatus(c.Query("status"))
	apps, total, err := h.chefUseCase.ListApplications(c.Request.Context(), actorFrom(c), status, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(apps, total, page, dto.ToApplicationResponse))
}

// GetApplication godoc
// @Summary      Get a chef application (admin)
// @Tags         chef-approval
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Application ID"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /ChefApproval/{id} [get]
func (h *ChefHandler) GetApplication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	app, err := h.chefUseCase.GetApplication(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// bindDecision reads optional admin remarks; an empty body is allowed.
func bindDecision(c *gin.Context) (dto.ReviewDecisionRequest, bool) {
	var req dto.ReviewDecisionRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	return req, bindJSON(c, &req)
}

// ApproveApplication godoc
// @Summary      Approve a chef application (admin)
// @Description  Creates the chef profile and promotes the user to Chef
// @Tags         chef-approval
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Application ID"
// @Param        request body dto.ReviewDecisionRequest false "Remarks"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /ChefApproval/{id}/approve [post]
func (h *ChefHandler) ApproveApplication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindDecision(c)
	if !ok {
		return
	}

	app, err := h.chefUseCase.Approve(c.Request.Context(), actorFrom(c), id, req.AdminRemarks)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// RejectApplication godoc
// @Summary      Reject a chef application (admin)
// @Tags         chef-approval
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Application ID"
// @Param        request body dto.ReviewDecisionRequest false "Remarks"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /ChefApproval/{id}/reject [post]
func (h *ChefHandler) RejectApplication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindDecision(c)
	if !ok {
		return
	}

	app, err := h.chefUseCase.Reject(c.Request.Context(), actorFrom(c), id, req.AdminRemarks)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}
