package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cafe-directory/internal/domain"
)

type CafeRepo struct{ db *gorm.DB }

func NewCafeRepo(db *gorm.DB) *CafeRepo { return &CafeRepo{db: db} }

var _ domain.CafeRepository = (*CafeRepo)(nil)

func (r *CafeRepo) Create(ctx context.Context, c *domain.Cafe) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CafeRepo) FindByID(ctx context.Context, id uint) (*domain.Cafe, error) {
	var c domain.Cafe
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CafeRepo) FindByName(ctx context.Context, name string) (*domain.Cafe, error) {
	var c domain.Cafe
	err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CafeRepo) List(ctx context.Context) ([]domain.Cafe, error) {
	var cafes []domain.Cafe
	if err := r.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}

func (r *CafeRepo) UpdateHours(ctx context.Context, id uint, field domain.HoursField, value string) (bool, error) {
	if field != domain.HoursOpen && field != domain.HoursClose {
		return false, fmt.Errorf("update hours: unknown field %q", field)
	}
	res := r.db.WithContext(ctx).Model(&domain.Cafe{}).Where("id = ?", id).Update(string(field), value)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// MySQL 只统计值真正变化的行，写入相同值时 RowsAffected 为 0
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Cafe{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CafeRepo) DeleteWithReviews(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cafe_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Cafe{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
