package http

import (
	"net/http"
	"strconv"

	"culinary-hub/internal/controller/http/dto"
	"culinary-hub/internal/usecase"
	"culinary-hub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase    usecase.PostUseCase
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, commentUseCase usecase.CommentUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase:    postUseCase,
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.PostResponse]
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := pageFrom(c)
	posts, total, err := h.postUseCase.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(posts, total, page, dto.ToPostResponse))
}

// ListUserPosts godoc
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  dto.ListResponse[dto.PostResponse]
// @Router       /posts/user/{userId} [get]
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	page := pageFrom(c)
	posts, total, err := h.postUseCase.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewList(posts, total, page, dto.ToPostResponse))
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePostRequest true "Post"
// @Success      201  {object}  dto.PostResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUseCase.Create(c.Request.Context(), actorFrom(c), req.Title, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// GetPost godoc
// @Summary      Get a post
// @Description  Post with its comment tree (depth 5, at most 500 comments)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  dto.PostDetailResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.postUseCase.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostDetailResponse(detail))
}

// UpdatePost godoc
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        request body dto.UpdatePostRequest true "Fields to change"
// @Success      200  {object}  dto.PostResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postUseCase.Update(c.Request.Context(), actorFrom(c), id, req.Title, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post with its comments, likes and views
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      204
// @Failure      403  {object}  dto.MessageResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPostImage godoc
// @Summary      Upload a post image
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        file formData file true "Image file"
// @Success      200  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /posts/{id}/image [post]
func (h *PostHandler) UploadPostImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, ok := openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.postUseCase.UploadImage(c.Request.Context(), actorFrom(c), id, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}

// LikePost godoc
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      201  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postUseCase.Like(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Post liked"})
}

// UnlikePost godoc
// @Summary      Remove a like
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      204
// @Failure      404  {object}  dto.MessageResponse
// @Router       /posts/{id}/like [delete]
func (h *PostHandler) UnlikePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postUseCase.Unlike(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordView godoc
// @Summary      Record a view
// @Description  One view per user and post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      201  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /posts/{id}/view [post]
func (h *PostHandler) RecordView(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postUseCase.RecordView(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "View recorded"})
}

// ListComments godoc
// @Summary      Comment tree of a post
// @Description  Depth 5 and 500 comments at most; pass parentId to continue below a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        parentId query int false "Start below this comment"
// @Success      200  {array}   dto.CommentNodeResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var parentID *uint
	if raw := c.Query("parentId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid parentId"})
			return
		}
		id := uint(parsed)
		parentID = &id
	}

	nodes, err := h.commentUseCase.Thread(c.Request.Context(), postID, parentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentTree(nodes))
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  parentCommentId must belong to the same post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        request body dto.CreateCommentRequest true "Comment"
// @Success      201  {object}  dto.CommentResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.Create(c.Request.Context(), actorFrom(c), postID, req.Content, req.ParentCommentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        commentId path int true "Comment ID"
// @Param        request body dto.UpdateCommentRequest true "New content"
// @Success      200  {object}  dto.CommentResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments/{commentId} [put]
func (h *PostHandler) UpdateComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.Update(c.Request.Context(), actorFrom(c), postID, commentID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Fails with 409 while the comment has replies
// @Tags         comments
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        commentId path int true "Comment ID"
// @Success      204
// @Failure      409  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments/{commentId} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	if err := h.commentUseCase.Delete(c.Request.Context(), actorFrom(c), postID, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LikeComment godoc
// @Summary      Like a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        commentId path int true "Comment ID"
// @Success      201  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments/{commentId}/like [post]
func (h *PostHandler) LikeComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	if err := h.commentUseCase.Like(c.Request.Context(), actorFrom(c), postID, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Comment liked"})
}

// UnlikeComment godoc
// @Summary      Remove a comment like
// @Tags         comments
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        commentId path int true "Comment ID"
// @Success      204
// @Failure      404  {object}  dto.MessageResponse
// @Router       /posts/{id}/comments/{commentId}/like [delete]
func (h *PostHandler) UnlikeComment(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}
	if err := h.commentUseCase.Unlike(c.Request.Context(), actorFrom(c), postID, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
