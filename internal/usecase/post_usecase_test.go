package usecase

import (
	"context"
	"strings"
	"testing"

	"culinary-hub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostUseCase_GetBuildsDetail(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	posts := NewPostUseCase(r.posts, r.comments, &fakeUploader{}, testLogger())
	comments := NewCommentUseCase(r.posts, r.comments, testLogger())

	author := seedUser(t, r, "author", entity.RoleUser)
	reader := seedUser(t, r, "reader", entity.RoleUser)

	post, err := posts.Create(ctx, author, "  Brioche  ", "Butter, lots of it")
	require.NoError(t, err)
	assert.Equal(t, "Brioche", post.Title)

	root, err := comments.Create(ctx, reader, post.ID, "How long to proof?", nil)
	require.NoError(t, err)
	_, err = comments.Create(ctx, author, post.ID, "Overnight in the fridge", &root.ID)
	require.NoError(t, err)

	require.NoError(t, posts.Like(ctx, reader, post.ID))
	require.NoError(t, posts.RecordView(ctx, reader, post.ID))
	assert.ErrorIs(t, posts.RecordView(ctx, reader, post.ID), entity.ErrConflict)

	detail, err := posts.Get(ctx, reader, post.ID)
	require.NoError(t, err)
	assert.True(t, detail.LikedByViewer)
	assert.Equal(t, 1, detail.Post.Rating)
	assert.Equal(t, 2, detail.Post.Comments)
	assert.Equal(t, 1, detail.Post.Views)
	require.Len(t, detail.Comments, 1)
	require.Len(t, detail.Comments[0].Replies, 1)

	other, err := posts.Get(ctx, author, post.ID)
	require.NoError(t, err)
	assert.False(t, other.LikedByViewer)
}

func TestPostUseCase_OwnershipRules(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	uploader := &fakeUploader{}
	posts := NewPostUseCase(r.posts, r.comments, uploader, testLogger())

	author := seedUser(t, r, "author", entity.RoleUser)
	stranger := seedUser(t, r, "stranger", entity.RoleUser)
	admin := seedUser(t, r, "admin", entity.RoleAdmin)

	post, err := posts.Create(ctx, author, "Title", "Body")
	require.NoError(t, err)

	title := "Hijacked"
	_, err = posts.Update(ctx, stranger, post.ID, &title, nil)
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = posts.UploadImage(ctx, stranger, post.ID, strings.NewReader("img"))
	assert.ErrorIs(t, err, entity.ErrForbidden)
	assert.ErrorIs(t, posts.Delete(ctx, stranger, post.ID), entity.ErrForbidden)

	url, err := posts.UploadImage(ctx, author, post.ID, strings.NewReader("img"))
	require.NoError(t, err)
	detail, err := posts.Get(ctx, author, post.ID)
	require.NoError(t, err)
	assert.Equal(t, url, detail.Post.ImageURL)

	require.NoError(t, posts.Delete(ctx, admin, post.ID))
	_, err = posts.Get(ctx, author, post.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCommentUseCase_ScopedToPost(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	posts := NewPostUseCase(r.posts, r.comments, &fakeUploader{}, testLogger())
	comments := NewCommentUseCase(r.posts, r.comments, testLogger())

	user := seedUser(t, r, "user", entity.RoleUser)
	first, err := posts.Create(ctx, user, "First", "Body")
	require.NoError(t, err)
	second, err := posts.Create(ctx, user, "Second", "Body")
	require.NoError(t, err)

	comment, err := comments.Create(ctx, user, first.ID, "hello", nil)
	require.NoError(t, err)

	_, err = comments.Update(ctx, user, second.ID, comment.ID, "moved")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, comments.Like(ctx, user, second.ID, comment.ID), entity.ErrNotFound)

	require.NoError(t, comments.Like(ctx, user, first.ID, comment.ID))
	assert.ErrorIs(t, comments.Like(ctx, user, first.ID, comment.ID), entity.ErrConflict)
	require.NoError(t, comments.Unlike(ctx, user, first.ID, comment.ID))

	reply, err := comments.Create(ctx, user, first.ID, "reply", &comment.ID)
	require.NoError(t, err)

	thread, err := comments.Thread(ctx, first.ID, &comment.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, reply.ID, thread[0].Comment.ID)

	assert.ErrorIs(t, comments.Delete(ctx, user, first.ID, comment.ID), entity.ErrHasDependents)

	_, err = comments.Thread(ctx, 999, nil)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
