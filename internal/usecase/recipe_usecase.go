package usecase

import (
	"context"
	"io"
	"strings"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/logger"
)

// RecipeInput carries ingredients either as the stored comma string or as a
// list; a non-nil list wins. List items may not contain the stored separator.
type RecipeInput struct {
	RecipeName      string
	Cuisine         string
	Ingredients     string
	IngredientsList []string
	Steps           string
	StepsList       []string
}

func (in RecipeInput) ingredients() (string, error) {
	if in.IngredientsList == nil {
		return in.Ingredients, nil
	}
	items, err := joinItems(in.IngredientsList, ",", "ingredient")
	if err != nil {
		return "", err
	}
	return strings.Join(items, ", "), nil
}

func (in RecipeInput) steps() (string, error) {
	if in.StepsList == nil {
		return strings.ReplaceAll(in.Steps, "\r\n", "\n"), nil
	}
	items, err := joinItems(in.StepsList, "\n", "step")
	if err != nil {
		return "", err
	}
	return strings.Join(items, "\n"), nil
}

// joinItems trims list items and drops blank ones.
func joinItems(list []string, sep, what string) ([]string, error) {
	items := make([]string, 0, len(list))
	for i, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, sep) || (sep == "\n" && strings.Contains(item, "\r")) {
			return nil, entity.Invalid("%s %d must not contain %q", what, i+1, sep)
		}
		items = append(items, item)
	}
	return items, nil
}

type RecipeUseCase interface {
	List(ctx context.Context, filter entity.RecipeFilter, page entity.Page) ([]*entity.Recipe, int64, error)
	Get(ctx context.Context, id uint) (*entity.Recipe, error)
	Create(ctx context.Context, actor entity.Actor, input RecipeInput) (*entity.Recipe, error)
	Update(ctx context.Context, actor entity.Actor, id uint, input RecipeInput) (*entity.Recipe, error)
	Delete(ctx context.Context, actor entity.Actor, id uint) error
	UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error)
}

type recipeUseCase struct {
	recipeRepo persistent.RecipeRepository
	uploader   Uploader
	logger     *logger.Logger
}

func NewRecipeUseCase(recipeRepo persistent.RecipeRepository, uploader Uploader, logger *logger.Logger) RecipeUseCase {
	return &recipeUseCase{
		recipeRepo: recipeRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (uc *recipeUseCase) List(ctx context.Context, filter entity.RecipeFilter, page entity.Page) ([]*entity.Recipe, int64, error) {
	filter.Cuisine = strings.TrimSpace(filter.Cuisine)
	return uc.recipeRepo.List(ctx, filter, page)
}

func (uc *recipeUseCase) Get(ctx context.Context, id uint) (*entity.Recipe, error) {
	return uc.recipeRepo.GetByID(ctx, id)
}

func applyRecipeInput(recipe *entity.Recipe, input RecipeInput) error {
	recipe.RecipeName = strings.TrimSpace(input.RecipeName)
	recipe.Cuisine = strings.TrimSpace(input.Cuisine)
	ingredients, err := input.ingredients()
	if err != nil {
		return err
	}
	steps, err := input.steps()
	if err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	recipe.Steps = steps

	if len(recipe.IngredientList()) == 0 {
		return entity.Invalid("at least one ingredient is required")
	}
	if len(recipe.StepList()) == 0 {
		return entity.Invalid("at least one step is required")
	}
	return nil
}

func (uc *recipeUseCase) Create(ctx context.Context, actor entity.Actor, input RecipeInput) (*entity.Recipe, error) {
	if !actor.CanPublish() {
		return nil, entity.Forbidden("only chefs can create recipes")
	}

	recipe := &entity.Recipe{ChefID: actor.UserID}
	if err := applyRecipeInput(recipe, input); err != nil {
		return nil, err
	}
	if err := uc.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	uc.logger.Info("Recipe created: id=%d chef=%d", recipe.ID, recipe.ChefID)
	return recipe, nil
}

func (uc *recipeUseCase) ownedRecipe(ctx context.Context, actor entity.Actor, id uint) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(recipe.ChefID) {
		return nil, entity.Forbidden("you can only manage your own recipes")
	}
	return recipe, nil
}

func (uc *recipeUseCase) Update(ctx context.Context, actor entity.Actor, id uint, input RecipeInput) (*entity.Recipe, error) {
	recipe, err := uc.ownedRecipe(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := applyRecipeInput(recipe, input); err != nil {
		return nil, err
	}
	if err := uc.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (uc *recipeUseCase) Delete(ctx context.Context, actor entity.Actor, id uint) error {
	if _, err := uc.ownedRecipe(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.recipeRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Recipe deleted: id=%d by=%d", id, actor.UserID)
	return nil
}

func (uc *recipeUseCase) UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error) {
	if _, err := uc.ownedRecipe(ctx, actor, id); err != nil {
		return "", err
	}

	url, err := uc.uploader.Upload(ctx, FolderRecipes, r)
	if err != nil {
		return "", err
	}
	if err := uc.recipeRepo.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}
