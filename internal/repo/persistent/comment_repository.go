package persistent

import (
	"context"
	"errors"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	ListThread(ctx context.Context, postID uint, root *uint, maxDepth, maxNodes int) ([]*entity.Comment, error)
	GetByID(ctx context.Context, id uint) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// ListThread loads the thread one level at a time, stopping one level below
// maxDepth and just past maxNodes so callers can tell that more exists.
func (r *commentRepository) ListThread(ctx context.Context, postID uint, root *uint, maxDepth, maxNodes int) ([]*entity.Comment, error) {
	db := r.db.WithContext(ctx)

	if root != nil {
		var count int64
		if err := db.Model(&model.CommentModel{}).Where("id = ? AND post_id = ?", *root, postID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, entity.NotFound("comment")
		}
	}

	level := db.Model(&model.CommentModel{}).Where("post_id = ?", postID)
	if root == nil {
		level = level.Where("parent_comment_id IS NULL")
	} else {
		level = level.Where("parent_comment_id = ?", *root)
	}

	var all []*entity.Comment
	for depth := 1; depth <= maxDepth+1; depth++ {
		limit := maxNodes + 1 - len(all)
		if limit <= 0 {
			break
		}

		var rows []model.CommentModel
		if err := level.Scopes(withAuthor("User")).
			Order("created_at ASC").Order("id ASC").
			Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		ids := make([]uint, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
			all = append(all, ToCommentEntity(&rows[i]))
		}
		level = db.Model(&model.CommentModel{}).Where("parent_comment_id IN ?", ids)
	}
	return all, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.WithContext(ctx).Scopes(withAuthor("User")).First(&commentModel, id).Error; err != nil {
		return nil, readError(err, "comment")
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	commentModel.Likes = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if commentModel.ParentCommentID != nil {
			var parent model.CommentModel
			if err := tx.Select("id", "post_id").First(&parent, *commentModel.ParentCommentID).Error; err != nil {
				return readError(err, "parent comment")
			}
			if parent.PostID != commentModel.PostID {
				return entity.Invalid("parent comment belongs to another post")
			}
		}

		if err := tx.Create(commentModel).Error; err != nil {
			return writeError(err, "comment", "post")
		}
		return bumpCounter(tx, &model.PostModel{}, commentModel.PostID, "comments", 1)
	})
	if err != nil {
		return err
	}

	fresh, err := r.GetByID(ctx, commentModel.ID)
	if err != nil {
		return err
	}
	*comment = *fresh
	return nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result := r.db.WithContext(ctx).Model(&model.CommentModel{}).Where("id = ?", comment.ID).Update("content", comment.Content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.NotFound("comment")
	}

	fresh, err := r.GetByID(ctx, comment.ID)
	if err != nil {
		return err
	}
	*comment = *fresh
	return nil
}

// Delete refuses comments that still have replies; the parent reference is
// NO ACTION in the schema so the store rejects it as well.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentModel model.CommentModel
		if err := tx.Select("id", "post_id").First(&commentModel, id).Error; err != nil {
			return readError(err, "comment")
		}

		var replies int64
		if err := tx.Model(&model.CommentModel{}).Where("parent_comment_id = ?", id).Count(&replies).Error; err != nil {
			return err
		}
		if replies > 0 {
			return entity.NewError(entity.ErrHasDependents, "comment has %d replies; delete them first", replies)
		}

		if err := tx.Delete(&model.CommentModel{}, id).Error; err != nil {
			return deleteError(err, "comment")
		}
		return bumpCounter(tx, &model.PostModel{}, commentModel.PostID, "comments", -1)
	})
}

func (r *commentRepository) Like(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &model.CommentLikeModel{UserID: userID, CommentID: commentID}
		if err := tx.Create(like).Error; err != nil {
			if isDuplicate(err) {
				return entity.Conflict("comment is already liked")
			}
			return writeError(err, "like", "comment")
		}
		return bumpCounter(tx, &model.CommentModel{}, commentID, "likes", 1)
	})
}

func (r *commentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&model.CommentLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.NotFound("like")
		}
		return bumpCounter(tx, &model.CommentModel{}, commentID, "likes", -1)
	})
}

type commentRef struct {
	ID              uint
	PostID          uint
	ParentCommentID *uint
}

// deleteUserComments removes every comment written by userID together with
// the reply subtrees under them, leaves first, and fixes the post counters.
func deleteUserComments(tx *gorm.DB, userID uint) error {
	var seed []commentRef
	if err := tx.Model(&model.CommentModel{}).
		Select("id", "post_id", "parent_comment_id").
		Where("user_id = ?", userID).
		Scan(&seed).Error; err != nil {
		return err
	}

	set := make(map[uint]commentRef, len(seed))
	frontier := make([]uint, 0, len(seed))
	for _, c := range seed {
		set[c.ID] = c
		frontier = append(frontier, c.ID)
	}

	for len(frontier) > 0 {
		var kids []commentRef
		if err := tx.Model(&model.CommentModel{}).
			Select("id", "post_id", "parent_comment_id").
			Where("parent_comment_id IN ?", frontier).
			Scan(&kids).Error; err != nil {
			return err
		}
		frontier = frontier[:0]
		for _, k := range kids {
			if _, seen := set[k.ID]; !seen {
				set[k.ID] = k
				frontier = append(frontier, k.ID)
			}
		}
	}
	if len(set) == 0 {
		return nil
	}

	perPost := make(map[uint]int)
	childCount := make(map[uint]int)
	for _, c := range set {
		perPost[c.PostID]++
		if c.ParentCommentID != nil {
			if _, ok := set[*c.ParentCommentID]; ok {
				childCount[*c.ParentCommentID]++
			}
		}
	}

	for len(set) > 0 {
		var leaves []uint
		for id := range set {
			if childCount[id] == 0 {
				leaves = append(leaves, id)
			}
		}
		if len(leaves) == 0 {
			return errors.New("comment graph contains a cycle")
		}
		if err := tx.Where("id IN ?", leaves).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}
		for _, id := range leaves {
			if parent := set[id].ParentCommentID; parent != nil {
				childCount[*parent]--
			}
			delete(set, id)
		}
	}

	for postID, n := range perPost {
		if err := bumpCounter(tx, &model.PostModel{}, postID, "comments", -n); err != nil {
			return err
		}
	}
	return nil
}
