package persistent

import (
	"context"
	"math"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateCourseReview(ctx context.Context, review *entity.CourseReview) error
	GetCourseReview(ctx context.Context, id uint) (*entity.CourseReview, error)
	ListCourseReviews(ctx context.Context, courseID uint) ([]*entity.CourseReview, error)
	UpdateCourseReview(ctx context.Context, review *entity.CourseReview) error
	DeleteCourseReview(ctx context.Context, id uint) error
	CourseRating(ctx context.Context, courseID uint) (entity.RatingSummary, error)

	CreateRecipeReview(ctx context.Context, review *entity.RecipeReview) error
	GetRecipeReview(ctx context.Context, id uint) (*entity.RecipeReview, error)
	ListRecipeReviews(ctx context.Context, recipeID uint) ([]*entity.RecipeReview, error)
	UpdateRecipeReview(ctx context.Context, review *entity.RecipeReview) error
	DeleteRecipeReview(ctx context.Context, id uint) error
	RecipeRating(ctx context.Context, recipeID uint) (entity.RatingSummary, error)

	ReconcileChefRatings(ctx context.Context) (int, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateCourseReview(ctx context.Context, review *entity.CourseReview) error {
	row := &model.CourseReviewModel{
		CourseID:   review.CourseID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: time.Now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("you have already reviewed this course")
			}
			return writeError(err, "review", "course")
		}
		return refreshCourseChef(tx, row.CourseID)
	})
	if err != nil {
		return err
	}
	return r.reloadCourseReview(ctx, row.ID, review)
}

func (r *reviewRepository) reloadCourseReview(ctx context.Context, id uint, dst *entity.CourseReview) error {
	fresh, err := r.GetCourseReview(ctx, id)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}

func (r *reviewRepository) GetCourseReview(ctx context.Context, id uint) (*entity.CourseReview, error) {
	var row model.CourseReviewModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&row, id).Error; err != nil {
		return nil, readError(err, "review")
	}
	return ToCourseReviewEntity(&row), nil
}

func (r *reviewRepository) ListCourseReviews(ctx context.Context, courseID uint) ([]*entity.CourseReview, error) {
	var rows []model.CourseReviewModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).
		Where("course_id = ?", courseID).
		Order("review_date DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]*entity.CourseReview, len(rows))
	for i := range rows {
		reviews[i] = ToCourseReviewEntity(&rows[i])
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateCourseReview(ctx context.Context, review *entity.CourseReview) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CourseReviewModel{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
			"rating":      review.Rating,
			"comment":     review.Comment,
			"review_date": time.Now(),
		})
		if result.Error != nil {
			return writeError(result.Error, "review", "course")
		}
		if result.RowsAffected == 0 {
			return entity.NotFound("review")
		}
		return refreshCourseChef(tx, review.CourseID)
	})
	if err != nil {
		return err
	}
	return r.reloadCourseReview(ctx, review.ID, review)
}

func (r *reviewRepository) DeleteCourseReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.CourseReviewModel
		if err := tx.Select("id", "course_id").First(&row, id).Error; err != nil {
			return readError(err, "review")
		}
		if err := tx.Delete(&model.CourseReviewModel{}, id).Error; err != nil {
			return err
		}
		return refreshCourseChef(tx, row.CourseID)
	})
}

func (r *reviewRepository) CourseRating(ctx context.Context, courseID uint) (entity.RatingSummary, error) {
	return ratingSummary(r.db.WithContext(ctx).Model(&model.CourseReviewModel{}).Where("course_id = ?", courseID))
}

func (r *reviewRepository) CreateRecipeReview(ctx context.Context, review *entity.RecipeReview) error {
	row := &model.RecipeReviewModel{
		RecipeID:   review.RecipeID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: time.Now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("you have already reviewed this recipe")
			}
			return writeError(err, "review", "recipe")
		}
		return refreshRecipeChef(tx, row.RecipeID)
	})
	if err != nil {
		return err
	}
	return r.reloadRecipeReview(ctx, row.ID, review)
}

func (r *reviewRepository) reloadRecipeReview(ctx context.Context, id uint, dst *entity.RecipeReview) error {
	fresh, err := r.GetRecipeReview(ctx, id)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}

func (r *reviewRepository) GetRecipeReview(ctx context.Context, id uint) (*entity.RecipeReview, error) {
	var row model.RecipeReviewModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&row, id).Error; err != nil {
		return nil, readError(err, "review")
	}
	return ToRecipeReviewEntity(&row), nil
}

func (r *reviewRepository) ListRecipeReviews(ctx context.Context, recipeID uint) ([]*entity.RecipeReview, error) {
	var rows []model.RecipeReviewModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).
		Where("recipe_id = ?", recipeID).
		Order("review_date DESC").Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]*entity.RecipeReview, len(rows))
	for i := range rows {
		reviews[i] = ToRecipeReviewEntity(&rows[i])
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateRecipeReview(ctx context.Context, review *entity.RecipeReview) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RecipeReviewModel{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
			"rating":      review.Rating,
			"comment":     review.Comment,
			"review_date": time.Now(),
		})
		if result.Error != nil {
			return writeError(result.Error, "review", "recipe")
		}
		if result.RowsAffected == 0 {
			return entity.NotFound("review")
		}
		return refreshRecipeChef(tx, review.RecipeID)
	})
	if err != nil {
		return err
	}
	return r.reloadRecipeReview(ctx, review.ID, review)
}

func (r *reviewRepository) DeleteRecipeReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.RecipeReviewModel
		if err := tx.Select("id", "recipe_id").First(&row, id).Error; err != nil {
			return readError(err, "review")
		}
		if err := tx.Delete(&model.RecipeReviewModel{}, id).Error; err != nil {
			return err
		}
		return refreshRecipeChef(tx, row.RecipeID)
	})
}

func (r *reviewRepository) RecipeRating(ctx context.Context, recipeID uint) (entity.RatingSummary, error) {
	return ratingSummary(r.db.WithContext(ctx).Model(&model.RecipeReviewModel{}).Where("recipe_id = ?", recipeID))
}

// ReconcileChefRatings recomputes every chef's aggregate from the review
// tables, repairing drift from writes made outside the service. It returns
// the number of chefs whose stored aggregate was corrected.
func (r *reviewRepository) ReconcileChefRatings(ctx context.Context) (int, error) {
	var chefUserIDs []uint
	if err := r.db.WithContext(ctx).Model(&model.ChefModel{}).Pluck("user_id", &chefUserIDs).Error; err != nil {
		return 0, err
	}

	corrected := 0
	for _, userID := range chefUserIDs {
		changed, err := updateChefRating(r.db.WithContext(ctx), userID)
		if err != nil {
			return corrected, err
		}
		if changed {
			corrected++
		}
	}
	return corrected, nil
}

func ratingSummary(query *gorm.DB) (entity.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := query.Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").Scan(&row).Error; err != nil {
		return entity.RatingSummary{}, err
	}
	return entity.RatingSummary{Average: round2(row.Average), Count: row.Count}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func refreshCourseChef(tx *gorm.DB, courseID uint) error {
	var chefID uint
	if err := tx.Model(&model.CourseModel{}).Where("id = ?", courseID).Pluck("chef_id", &chefID).Error; err != nil {
		return err
	}
	return refreshChefRating(tx, chefID)
}

func refreshRecipeChef(tx *gorm.DB, recipeID uint) error {
	var chefID uint
	if err := tx.Model(&model.RecipeModel{}).Where("id = ?", recipeID).Pluck("chef_id", &chefID).Error; err != nil {
		return err
	}
	return refreshChefRating(tx, chefID)
}

const chefRatingQuery = `
SELECT COALESCE(AVG(t.rating), 0) AS average, COUNT(*) AS count FROM (
	SELECT cr.rating FROM course_reviews cr JOIN courses c ON c.id = cr.course_id WHERE c.chef_id = ?
	UNION ALL
	SELECT rr.rating FROM recipe_reviews rr JOIN recipes r ON r.id = rr.recipe_id WHERE r.chef_id = ?
) t`

// refreshChefRating recomputes rating and totalReviews across the chef's
// courses and recipes. Users without a chef profile are a no-op.
func refreshChefRating(tx *gorm.DB, chefUserID uint) error {
	_, err := updateChefRating(tx, chefUserID)
	return err
}

// updateChefRating writes the recomputed aggregate only when it differs from
// the stored one and reports whether a row changed.
func updateChefRating(tx *gorm.DB, chefUserID uint) (bool, error) {
	if chefUserID == 0 {
		return false, nil
	}
	var row struct {
		Average float64
		Count   int64
	}
	if err := tx.Raw(chefRatingQuery, chefUserID, chefUserID).Scan(&row).Error; err != nil {
		return false, err
	}

	rating := round2(row.Average)
	result := tx.Model(&model.ChefModel{}).
		Where("user_id = ? AND (rating <> ? OR total_reviews <> ?)", chefUserID, rating, row.Count).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": row.Count,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
