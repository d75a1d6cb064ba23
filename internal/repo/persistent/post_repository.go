package persistent

import (
	"context"
	"time"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id uint) (*entity.Post, error)
	List(ctx context.Context, page entity.Page) ([]*entity.Post, int64, error)
	ListByUser(ctx context.Context, userID uint, page entity.Page) ([]*entity.Post, int64, error)
	Update(ctx context.Context, post *entity.Post) error
	SetImage(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	RecordView(ctx context.Context, userID, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	postModel.Rating, postModel.Comments, postModel.Views = 0, 0, 0
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return writeError(err, "post", "author")
	}
	return r.reload(ctx, postModel.ID, post)
}

func (r *postRepository) reload(ctx context.Context, id uint, dst *entity.Post) error {
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*dst = *fresh
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&postModel, id).Error; err != nil {
		return nil, readError(err, "post")
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(ctx context.Context, page entity.Page) ([]*entity.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.PostModel{}), page)
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, page entity.Page) ([]*entity.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.PostModel{}).Where("user_id = ?", userID), page)
}

func (r *postRepository) list(_ context.Context, query *gorm.DB, page entity.Page) ([]*entity.Post, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postModels []model.PostModel
	if err := query.Scopes(withAuthor("User"), paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("post")
	}
	return r.reload(ctx, post.ID, post)
}

func (r *postRepository) SetImage(ctx context.Context, id uint, url string) error {
	result := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("post")
	}
	return nil
}

// Delete relies on the store to cascade comments, likes and views.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.PostModel{}, id)
	if result.Error != nil {
		return deleteError(result.Error, "post")
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("post")
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &model.PostLikeModel{UserID: userID, PostID: postID}
		if err := tx.Create(like).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("post is already liked")
			}
			return writeError(err, "like", "post")
		}
		return bumpCounter(tx, &model.PostModel{}, postID, "rating", 1)
	})
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.NotFound("like")
		}
		return bumpCounter(tx, &model.PostModel{}, postID, "rating", -1)
	})
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostLikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) RecordView(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := &model.PostViewModel{UserID: userID, PostID: postID, ViewedAt: time.Now()}
		if err := tx.Create(view).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("view already recorded")
			}
			return writeError(err, "view", "post")
		}
		return bumpCounter(tx, &model.PostModel{}, postID, "views", 1)
	})
}

// bumpCounter adds delta to a counter column with a single UPDATE so
// concurrent writers never lose increments.
func bumpCounter(tx *gorm.DB, m interface{}, id uint, column string, delta int) error {
	result := tx.Model(m).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
