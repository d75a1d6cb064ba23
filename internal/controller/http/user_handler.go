package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/entity"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Register a new account with the User role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "New user"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), usecase.CreateUserInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Failure      401  {object}  dto.MessageResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := pageFrom(c)
	users, total, err := h.userUseCase.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(users, total, page, dto.ToUserResponse))
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.respondUser(c, id)
}

func (h *UserHandler) respondUser(c *gin.Context, id uint) {
	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Only the user or an admin may update the profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body dto.UpdateUserRequest true "Fields to change"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.update(c, id)
}

func (h *UserHandler) update(c *gin.Context, id uint) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), actorFrom(c), id, usecase.UpdateUserInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the account and its content. Reviews are kept.
// @Tags         users
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      204
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /users/{id} [delete]
// @Router       /ManageUser/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile godoc
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	h.respondUser(c, actorFrom(c).UserID)
}

// UpdateProfile godoc
// @Summary      Update the current user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateUserRequest true "Fields to change"
// @Success      200  {object}  dto.UserResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	h.update(c, actorFrom(c).UserID)
}

// UploadAvatar godoc
// @Summary      Upload an avatar
// @Description  The image is resized, converted to WebP and stored on the profile
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Image file"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /profile/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.userUseCase.UploadAvatar(c.Request.Context(), actorFrom(c), file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}

// ManageUsers godoc
// @Summary      Admin: list users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Failure      403  {object}  dto.MessageResponse
// @Router       /ManageUser [get]
func (h *UserHandler) ManageUsers(c *gin.Context) {
	h.ListUsers(c)
}

// SetRole godoc
// @Summary      Admin: change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Param        request body dto.UpdateRoleRequest true "New role"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /ManageUser/{id}/role [put]
func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userUseCase.SetRole(c.Request.Context(), actorFrom(c), id, entity.Role(req.Role))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
