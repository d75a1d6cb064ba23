package model

import "time"

type PostModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Content   string     `gorm:"type:text;not null"`
	ImageURL  string     `gorm:"type:varchar(500)"`
	Rating    int        `gorm:"not null;default:0"`
	Comments  int        `gorm:"not null;default:0"`
	Views     int        `gorm:"not null;default:0"`
	CreatedAt time.Time  `gorm:"index"`
	UpdatedAt time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

// CommentModel replies point at their parent with NO ACTION, so a comment
// with replies cannot be removed on its own. Deleting the post removes the
// whole thread in one statement.
type CommentModel struct {
	ID              uint          `gorm:"primaryKey"`
	PostID          uint          `gorm:"not null;index"`
	Post            *PostModel    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID          uint          `gorm:"not null;index"`
	User            *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ParentCommentID *uint         `gorm:"index"`
	Parent          *CommentModel `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:NO ACTION"`
	Content         string        `gorm:"type:text;not null"`
	Likes           int           `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (CommentModel) TableName() string {
	return "comments"
}

type PostLikeModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_post_likes_user_post"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    uint       `gorm:"not null;uniqueIndex:idx_post_likes_user_post;index"`
	Post      *PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

type CommentLikeModel struct {
	ID        uint          `gorm:"primaryKey"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_comment_likes_user_comment"`
	User      *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CommentID uint          `gorm:"not null;uniqueIndex:idx_comment_likes_user_comment;index"`
	Comment   *CommentModel `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (CommentLikeModel) TableName() string {
	return "comment_likes"
}

type PostViewModel struct {
	ID       uint       `gorm:"primaryKey"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_post_views_user_post"`
	User     *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID   uint       `gorm:"not null;uniqueIndex:idx_post_views_user_post;index"`
	Post     *PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	ViewedAt time.Time  `gorm:"not null"`
}

func (PostViewModel) TableName() string {
	return "post_views"
}
