package persistent

import (
	"context"
	"fmt"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	List(ctx context.Context, page entity.Page) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, id uint, role entity.Role) error
	UpdateAvatar(ctx context.Context, id uint, url string) error
	// Delete returns the ids of the courses removed with the user.
	Delete(ctx context.Context, id uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		if isDuplicate(err) {
			return entity.Conflict("username or email is already taken")
		}
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, readError(err, "user")
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) List(ctx context.Context, page entity.Page) ([]*entity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []model.UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(page.Limit).Offset(page.Offset).Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"full_name": user.FullName,
		"username":  user.Username,
		"email":     user.Email,
		"phone":     user.Phone,
	})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return entity.Conflict("username or email is already taken")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("user")
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role entity.Role) error {
	return r.updateColumn(ctx, id, "role", string(role))
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uint, url string) error {
	return r.updateColumn(ctx, id, "avatar_url", url)
}

func (r *userRepository) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("user")
	}
	return nil
}

// Delete removes everything the user owns or did, keeps their reviews and
// soft-deletes the user row with a scrubbed username and email.
func (r *userRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	var courseIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userModel model.UserModel
		if err := tx.First(&userModel, id).Error; err != nil {
			return readError(err, "user")
		}

		if err := deleteUserComments(tx, id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := withdrawUserReactions(tx, id); err != nil {
			return fmt.Errorf("failed to remove likes and views: %w", err)
		}

		owned := []interface{}{
			&model.EnrollmentModel{},
			&model.ChefApplicationModel{},
			&model.ChefModel{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.PostModel{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.CourseModel{}).Where("chef_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return err
		}
		// courses and recipes take their sections, quizzes, reviews and
		// enrollments with them
		if err := tx.Where("chef_id = ?", id).Delete(&model.CourseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chef_id = ?", id).Delete(&model.RecipeModel{}).Error; err != nil {
			return err
		}

		scrub := map[string]interface{}{
			"username": fmt.Sprintf("deleted-user-%d", id),
			"email":    fmt.Sprintf("deleted-user-%d@deleted.invalid", id),
			"phone":    "",
		}
		if err := tx.Model(&model.UserModel{}).Where("id = ?", id).Updates(scrub).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UserModel{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return courseIDs, nil
}

// withdrawUserReactions deletes the user's likes and views on content that
// survives, keeping the denormalized counters in step.
func withdrawUserReactions(tx *gorm.DB, userID uint) error {
	likedPosts := tx.Model(&model.PostLikeModel{}).Select("post_id").Where("user_id = ?", userID)
	if err := tx.Model(&model.PostModel{}).Where("id IN (?)", likedPosts).
		UpdateColumn("rating", gorm.Expr("rating - ?", 1)).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.PostLikeModel{}).Error; err != nil {
		return err
	}

	viewedPosts := tx.Model(&model.PostViewModel{}).Select("post_id").Where("user_id = ?", userID)
	if err := tx.Model(&model.PostModel{}).Where("id IN (?)", viewedPosts).
		UpdateColumn("views", gorm.Expr("views - ?", 1)).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.PostViewModel{}).Error; err != nil {
		return err
	}

	likedComments := tx.Model(&model.CommentLikeModel{}).Select("comment_id").Where("user_id = ?", userID)
	if err := tx.Model(&model.CommentModel{}).Where("id IN (?)", likedComments).
		UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&model.CommentLikeModel{}).Error
}
