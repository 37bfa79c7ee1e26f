package database

import (
	"gorm.io/gorm"

	"cafe-directory/internal/domain"
)

// Migrate 建表：cafes / users / reviews
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Cafe{}, &domain.User{}, &domain.Review{})
}
