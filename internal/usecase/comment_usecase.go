package usecase

import (
	"context"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/logger"
)

type CommentUseCase interface {
	// Thread returns the comment forest of a post, or the replies below
	// parentID when it is set.
	Thread(ctx context.Context, postID uint, parentID *uint) ([]*entity.CommentNode, error)
	Create(ctx context.Context, actor entity.Actor, postID uint, content string, parentID *uint) (*entity.Comment, error)
	Update(ctx context.Context, actor entity.Actor, postID, commentID uint, content string) (*entity.Comment, error)
	Delete(ctx context.Context, actor entity.Actor, postID, commentID uint) error
	Like(ctx context.Context, actor entity.Actor, postID, commentID uint) error
	Unlike(ctx context.Context, actor entity.Actor, postID, commentID uint) error
}

type commentUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	logger      *logger.Logger
}

func NewCommentUseCase(postRepo persistent.PostRepository, commentRepo persistent.CommentRepository, logger *logger.Logger) CommentUseCase {
	return &commentUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *commentUseCase) Thread(ctx context.Context, postID uint, parentID *uint) ([]*entity.CommentNode, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if parentID != nil {
		if _, err := uc.commentOnPost(ctx, postID, *parentID); err != nil {
			return nil, err
		}
	}

	comments, err := uc.commentRepo.ListThread(ctx, postID, parentID, entity.MaxCommentDepth, entity.MaxCommentNodes)
	if err != nil {
		return nil, err
	}
	return entity.BuildCommentTree(comments, parentID, entity.MaxCommentDepth, entity.MaxCommentNodes), nil
}

func (uc *commentUseCase) Create(ctx context.Context, actor entity.Actor, postID uint, content string, parentID *uint) (*entity.Comment, error) {
	comment := &entity.Comment{
		PostID:          postID,
		UserID:          actor.UserID,
		ParentCommentID: parentID,
		Content:         content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) Update(ctx context.Context, actor entity.Actor, postID, commentID uint, content string) (*entity.Comment, error) {
	comment, err := uc.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, comment.UserID, "edit"); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) Delete(ctx context.Context, actor entity.Actor, postID, commentID uint) error {
	comment, err := uc.commentOnPost(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, comment.UserID, "delete"); err != nil {
		return err
	}
	return uc.commentRepo.Delete(ctx, commentID)
}

func (uc *commentUseCase) Like(ctx context.Context, actor entity.Actor, postID, commentID uint) error {
	if _, err := uc.commentOnPost(ctx, postID, commentID); err != nil {
		return err
	}
	return uc.commentRepo.Like(ctx, actor.UserID, commentID)
}

func (uc *commentUseCase) Unlike(ctx context.Context, actor entity.Actor, postID, commentID uint) error {
	if _, err := uc.commentOnPost(ctx, postID, commentID); err != nil {
		return err
	}
	return uc.commentRepo.Unlike(ctx, actor.UserID, commentID)
}

// commentOnPost treats a comment addressed through the wrong post as missing.
func (uc *commentUseCase) commentOnPost(ctx context.Context, postID, commentID uint) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, entity.NotFound("comment")
	}
	return comment, nil
}
