package model

import "time"

type RecipeModel struct {
	ID          uint       `gorm:"primaryKey"`
	ChefID      uint       `gorm:"not null;index"`
	Chef        *UserModel `gorm:"foreignKey:ChefID;constraint:OnDelete:CASCADE"`
	RecipeName  string     `gorm:"type:varchar(200);not null"`
	Cuisine     string     `gorm:"type:varchar(100);index"`
	RecipeImage string     `gorm:"type:varchar(500)"`
	Ingredients string     `gorm:"type:text;not null"`
	Steps       string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

func (RecipeModel) TableName() string {
	return "recipes"
}

type RecipeReviewModel struct {
	ID         uint         `gorm:"primaryKey"`
	RecipeID   uint         `gorm:"not null;uniqueIndex:idx_recipe_reviews_recipe_user"`
	Recipe     *RecipeModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	UserID     uint         `gorm:"not null;uniqueIndex:idx_recipe_reviews_recipe_user;index"`
	User       *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION"`
	Rating     int          `gorm:"not null;check:chk_recipe_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment    string       `gorm:"type:text"`
	ReviewDate time.Time    `gorm:"not null"`
}

func (RecipeReviewModel) TableName() string {
	return "recipe_reviews"
}
