package domain

import (
	"context"
	"time"
)

// ReviewDateLayout 例：October 15, 2026
const ReviewDateLayout = "January 02, 2006"

type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Date     string `gorm:"size:250;not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	AuthorID uint   `gorm:"not null;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CafeID   uint   `gorm:"not null;index" json:"cafeId"`
	Cafe     *Cafe  `gorm:"foreignKey:CafeID" json:"-"`
}

func (Review) TableName() string { return "reviews" }

func ReviewDate(t time.Time) string { return t.Format(ReviewDateLayout) }

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	// ListByCafe 带作者
	ListByCafe(ctx context.Context, cafeID uint) ([]Review, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]Review, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
