package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is soft-deleted so review rows keep a valid reviewer reference.
type UserModel struct {
	ID           uint           `gorm:"primaryKey"`
	FullName     string         `gorm:"type:varchar(150);not null"`
	Username     string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Phone        string         `gorm:"type:varchar(30)"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Role         string         `gorm:"type:varchar(20);not null;default:User;index"`
	AvatarURL    string         `gorm:"type:varchar(500)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}
