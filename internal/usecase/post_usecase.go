package usecase

import (
	"context"
	"io"
	"strings"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/logger"
)

type PostUseCase interface {
	List(ctx context.Context, page entity.Page) ([]*entity.Post, int64, error)
	ListByUser(ctx context.Context, userID uint, page entity.Page) ([]*entity.Post, int64, error)
	Create(ctx context.Context, actor entity.Actor, title, content string) (*entity.Post, error)
	Get(ctx context.Context, actor entity.Actor, id uint) (*entity.PostDetail, error)
	Update(ctx context.Context, actor entity.Actor, id uint, title, content *string) (*entity.Post, error)
	Delete(ctx context.Context, actor entity.Actor, id uint) error
	UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error)
	Like(ctx context.Context, actor entity.Actor, id uint) error
	Unlike(ctx context.Context, actor entity.Actor, id uint) error
	RecordView(ctx context.Context, actor entity.Actor, id uint) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	uploader    Uploader
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	uploader Uploader,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

func (uc *postUseCase) List(ctx context.Context, page entity.Page) ([]*entity.Post, int64, error) {
	return uc.postRepo.List(ctx, page)
}

func (uc *postUseCase) ListByUser(ctx context.Context, userID uint, page entity.Page) ([]*entity.Post, int64, error) {
	return uc.postRepo.ListByUser(ctx, userID, page)
}

func (uc *postUseCase) Create(ctx context.Context, actor entity.Actor, title, content string) (*entity.Post, error) {
	post := &entity.Post{
		UserID:  actor.UserID,
		Title:   strings.TrimSpace(title),
		Content: content,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns the post with its comment tree capped at the default depth
// and size.
func (uc *postUseCase) Get(ctx context.Context, actor entity.Actor, id uint) (*entity.PostDetail, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListThread(ctx, id, nil, entity.MaxCommentDepth, entity.MaxCommentNodes)
	if err != nil {
		return nil, err
	}

	liked, err := uc.postRepo.IsLiked(ctx, actor.UserID, id)
	if err != nil {
		return nil, err
	}

	return &entity.PostDetail{
		Post:          post,
		Comments:      entity.BuildCommentTree(comments, nil, entity.MaxCommentDepth, entity.MaxCommentNodes),
		LikedByViewer: liked,
	}, nil
}

func (uc *postUseCase) Update(ctx context.Context, actor entity.Actor, id uint, title, content *string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, post.UserID, "update"); err != nil {
		return nil, err
	}

	if title != nil {
		post.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		post.Content = *content
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) Delete(ctx context.Context, actor entity.Actor, id uint) error {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, post.UserID, "delete"); err != nil {
		return err
	}
	return uc.postRepo.Delete(ctx, id)
}

func (uc *postUseCase) UploadImage(ctx context.Context, actor entity.Actor, id uint, r io.Reader) (string, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := requireOwner(actor, post.UserID, "update"); err != nil {
		return "", err
	}

	url, err := uc.uploader.Upload(ctx, FolderPosts, r)
	if err != nil {
		return "", err
	}
	if err := uc.postRepo.SetImage(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

func (uc *postUseCase) Like(ctx context.Context, actor entity.Actor, id uint) error {
	return uc.postRepo.Like(ctx, actor.UserID, id)
}

func (uc *postUseCase) Unlike(ctx context.Context, actor entity.Actor, id uint) error {
	return uc.postRepo.Unlike(ctx, actor.UserID, id)
}

func (uc *postUseCase) RecordView(ctx context.Context, actor entity.Actor, id uint) error {
	return uc.postRepo.RecordView(ctx, actor.UserID, id)
}
