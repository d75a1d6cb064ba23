package entity

import "time"

type Post struct {
	ID             uint
	UserID         uint
	AuthorName     string
	AuthorUsername string
	Title          string
	Content        string
	ImageURL       string
	Rating         int
	Comments       int
	Views          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Comment struct {
	ID              uint
	PostID          uint
	UserID          uint
	AuthorName      string
	AuthorUsername  string
	ParentCommentID *uint
	Content         string
	Likes           int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PostLike struct {
	ID        uint
	UserID    uint
	PostID    uint
	CreatedAt time.Time
}

type CommentLike struct {
	ID        uint
	UserID    uint
	CommentID uint
	CreatedAt time.Time
}

type PostView struct {
	ID       uint
	UserID   uint
	PostID   uint
	ViewedAt time.Time
}

// PostDetail is a post with its materialized comment tree.
type PostDetail struct {
	Post          *Post
	Comments      []*CommentNode
	LikedByViewer bool
}
