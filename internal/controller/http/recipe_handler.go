package http

import (
	"net/http"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/entity"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipeUseCase usecase.RecipeUseCase
	logger        *logger.Logger
}

func NewRecipeHandler(recipeUseCase usecase.RecipeUseCase, logger *logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeUseCase: recipeUseCase,
		logger:        logger,
	}
}

func recipeInput(req dto.RecipeRequest) usecase.RecipeInput {
	return usecase.RecipeInput{
		RecipeName:      req.RecipeName,
		Cuisine:         req.Cuisine,
		Ingredients:     req.Ingredients.Text,
		IngredientsList: req.Ingredients.Items,
		Steps:           req.Steps.Text,
		StepsList:       req.Steps.Items,
	}
}

func (h *RecipeHandler) list(c *gin.Context, filter entity.RecipeFilter) {
	page := pageFrom(c)
	recipes, total, err := h.recipeUseCase.List(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(recipes, total, page, dto.ToRecipeResponse))
}

// ListRecipes godoc
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        cuisine query string false "Cuisine (case-insensitive)"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.RecipeResponse]
// @Router       /recipes [get]
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	h.list(c, entity.RecipeFilter{Cuisine: c.Query("cuisine")})
}

// ListChefRecipes godoc
// @Summary      List a chef's recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Chef ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.RecipeResponse]
// @Router       /recipes/chef/{id} [get]
func (h *RecipeHandler) ListChefRecipes(c *gin.Context) {
	chefID, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.list(c, entity.RecipeFilter{ChefID: chefID})
}

// ManageRecipes godoc
// @Summary      List all recipes (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        cuisine query string false "Cuisine"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.RecipeResponse]
// @Failure      403  {object}  dto.MessageResponse
// @Router       /ManageRecipe [get]
func (h *RecipeHandler) ManageRecipes(c *gin.Context) {
	h.list(c, entity.RecipeFilter{Cuisine: c.Query("cuisine")})
}

// CreateRecipe godoc
// @Summary      Create a recipe
// @Description  ingredients and steps accept a list or the stored string form
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RecipeRequest true "Recipe"
// @Success      201  {object}  dto.RecipeResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req dto.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeUseCase.Create(c.Request.Context(), actorFrom(c), recipeInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecipeResponse(recipe))
}

// GetRecipe godoc
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe ID"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeResponse(recipe))
}

// UpdateRecipe godoc
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe ID"
// @Param        request body dto.RecipeRequest true "Recipe"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeUseCase.Update(c.Request.Context(), actorFrom(c), id, recipeInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecipeResponse(recipe))
}

// DeleteRecipe godoc
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id path int true "Recipe ID"
// @Success      204
// @Failure      403  {object}  dto.MessageResponse
// @Router       /recipes/{id} [delete]
// @Router       /ManageRecipe/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.recipeUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadRecipeImage godoc
// @Summary      Upload a recipe image
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe ID"
// @Param        file formData file true "Image file"
// @Success      200  {object}  dto.UploadResponse
// @Router       /recipes/{id}/image [post]
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.recipeUseCase.UploadImage(c.Request.Context(), actorFrom(c), id, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}
