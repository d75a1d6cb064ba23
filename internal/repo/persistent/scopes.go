package persistent

import (
	"culinary-hub/internal/entity"

	"gorm.io/gorm"
)

// withAuthor preloads a user association, including soft-deleted users, so
// names still resolve on content that outlived its author.
func withAuthor(association string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association, func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		})
	}
}

func paginate(page entity.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}
		return db.Limit(page.Limit).Offset(page.Offset)
	}
}
