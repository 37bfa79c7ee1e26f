package repo

import (
	"context"

	"gorm.io/gorm"

	"cafe-directory/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

var _ domain.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	// 只写外键，不带关联对象 upsert
	return r.db.WithContext(ctx).Omit("Author", "Cafe").Create(rv).Error
}

func (r *ReviewRepo) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) ListByCafe(ctx context.Context, cafeID uint) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("cafe_id = ?", cafeID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ReviewRepo) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("Cafe").
		Where("author_id = ?", authorID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
