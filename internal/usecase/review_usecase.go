package usecase

import (
	"context"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/logger"
)

// ReviewUseCase covers course and recipe reviews. Every write recomputes
// the owning chef's rating in the same transaction.
type ReviewUseCase interface {
	CreateCourseReview(ctx context.Context, actor entity.Actor, courseID uint, rating int, comment string) (*entity.CourseReview, error)
	ListCourseReviews(ctx context.Context, courseID uint) ([]*entity.CourseReview, error)
	UpdateCourseReview(ctx context.Context, actor entity.Actor, id uint, rating int, comment string) (*entity.CourseReview, error)
	DeleteCourseReview(ctx context.Context, actor entity.Actor, id uint) error

	CreateRecipeReview(ctx context.Context, actor entity.Actor, recipeID uint, rating int, comment string) (*entity.RecipeReview, error)
	ListRecipeReviews(ctx context.Context, recipeID uint) ([]*entity.RecipeReview, error)
	UpdateRecipeReview(ctx context.Context, actor entity.Actor, id uint, rating int, comment string) (*entity.RecipeReview, error)
	DeleteRecipeReview(ctx context.Context, actor entity.Actor, id uint) error
}

type reviewUseCase struct {
	reviewRepo persistent.ReviewRepository
	courseRepo persistent.CourseRepository
	recipeRepo persistent.RecipeRepository
	cache      cache.Store
	logger     *logger.Logger
}

func NewReviewUseCase(
	reviewRepo persistent.ReviewRepository,
	courseRepo persistent.CourseRepository,
	recipeRepo persistent.RecipeRepository,
	store cache.Store,
	logger *logger.Logger,
) ReviewUseCase {
	if store == nil {
		store = cache.NopStore{}
	}
	return &reviewUseCase{
		reviewRepo: reviewRepo,
		courseRepo: courseRepo,
		recipeRepo: recipeRepo,
		cache:      store,
		logger:     logger,
	}
}

func validRating(rating int) error {
	if !entity.ValidRating(rating) {
		return entity.Invalid("rating must be between 1 and 5")
	}
	return nil
}

func (uc *reviewUseCase) dropCourse(ctx context.Context, courseID uint) {
	if err := uc.cache.Delete(ctx, courseDetailKey(courseID)); err != nil {
		uc.logger.Warn("Course cache invalidation failed for %d: %v", courseID, err)
	}
}

func (uc *reviewUseCase) CreateCourseReview(ctx context.Context, actor entity.Actor, courseID uint, rating int, comment string) (*entity.CourseReview, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}

	review := &entity.CourseReview{
		CourseID: courseID,
		UserID:   actor.UserID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := uc.reviewRepo.CreateCourseReview(ctx, review); err != nil {
		return nil, err
	}
	uc.dropCourse(ctx, courseID)
	return review, nil
}

func (uc *reviewUseCase) ListCourseReviews(ctx context.Context, courseID uint) ([]*entity.CourseReview, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListCourseReviews(ctx, courseID)
}

func (uc *reviewUseCase) UpdateCourseReview(ctx context.Context, actor entity.Actor, id uint, rating int, comment string) (*entity.CourseReview, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}

	review, err := uc.reviewRepo.GetCourseReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, review.UserID, "edit"); err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := uc.reviewRepo.UpdateCourseReview(ctx, review); err != nil {
		return nil, err
	}
	uc.dropCourse(ctx, review.CourseID)
	return review, nil
}

func (uc *reviewUseCase) DeleteCourseReview(ctx context.Context, actor entity.Actor, id uint) error {
	review, err := uc.reviewRepo.GetCourseReview(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, review.UserID, "delete"); err != nil {
		return err
	}
	if err := uc.reviewRepo.DeleteCourseReview(ctx, id); err != nil {
		return err
	}
	uc.dropCourse(ctx, review.CourseID)
	return nil
}

func (uc *reviewUseCase) CreateRecipeReview(ctx context.Context, actor entity.Actor, recipeID uint, rating int, comment string) (*entity.RecipeReview, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}

	review := &entity.RecipeReview{
		RecipeID: recipeID,
		UserID:   actor.UserID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := uc.reviewRepo.CreateRecipeReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) ListRecipeReviews(ctx context.Context, recipeID uint) ([]*entity.RecipeReview, error) {
	if _, err := uc.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListRecipeReviews(ctx, recipeID)
}

func (uc *reviewUseCase) UpdateRecipeReview(ctx context.Context, actor entity.Actor, id uint, rating int, comment string) (*entity.RecipeReview, error) {
	if err := validRating(rating); err != nil {
		return nil, err
	}

	review, err := uc.reviewRepo.GetRecipeReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, review.UserID, "edit"); err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := uc.reviewRepo.UpdateRecipeReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *reviewUseCase) DeleteRecipeReview(ctx context.Context, actor entity.Actor, id uint) error {
	review, err := uc.reviewRepo.GetRecipeReview(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, review.UserID, "delete"); err != nil {
		return err
	}
	return uc.reviewRepo.DeleteRecipeReview(ctx, id)
}
