package persistent

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id uint) (*entity.Recipe, error)
	List(ctx context.Context, filter entity.RecipeFilter, page entity.Page) ([]*entity.Recipe, int64, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	SetImage(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	row := ToRecipeModel(recipe)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return writeError(err, "recipe", "chef")
	}
	return r.reload(ctx, row.ID, recipe)
}

func (r *recipeRepository) reload(ctx context.Context, id uint, dst *entity.Recipe) error {
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*entity.Recipe, error) {
	var row model.RecipeModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("Chef")).First(&row, id).Error; err != nil {
		return nil, readError(err, "recipe")
	}
	return ToRecipeEntity(&row), nil
}

func (r *recipeRepository) List(ctx context.Context, filter entity.RecipeFilter, page entity.Page) ([]*entity.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.RecipeModel{})
	if filter.Cuisine != "" {
		query = query.Where("LOWER(cuisine) = LOWER(?)", filter.Cuisine)
	}
	if filter.ChefID != 0 {
		query = query.Where("chef_id = ?", filter.ChefID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.RecipeModel
	if err := query.Scopes(withAuthor("Chef"), paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	recipes := make([]*entity.Recipe, len(rows))
	for i := range rows {
		recipes[i] = ToRecipeEntity(&rows[i])
	}
	return recipes, total, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	result := r.db.WithContext(ctx).Model(&model.RecipeModel{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
		"recipe_name": recipe.RecipeName,
		"cuisine":     recipe.Cuisine,
		"ingredients": recipe.Ingredients,
		"steps":       recipe.Steps,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("recipe")
	}
	return r.reload(ctx, recipe.ID, recipe)
}

func (r *recipeRepository) SetImage(ctx context.Context, id uint, url string) error {
	result := r.db.WithContext(ctx).Model(&model.RecipeModel{}).Where("id = ?", id).Update("recipe_image", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("recipe")
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.RecipeModel
		if err := tx.Select("id", "chef_id").First(&row, id).Error; err != nil {
			return readError(err, "recipe")
		}
		if err := tx.Delete(&model.RecipeModel{}, id).Error; err != nil {
			return deleteError(err, "recipe")
		}
		return refreshChefRating(tx, row.ChefID)
	})
}
