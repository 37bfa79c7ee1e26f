package service

import (
	"context"
	"fmt"
	"time"

	"cafe-directory/internal/domain"
)

type ReviewService struct {
	reviews domain.ReviewRepository
	cafes   domain.CafeRepository
	users   domain.UserRepository
	now     func() time.Time
}

func NewReviewService(reviews domain.ReviewRepository, cafes domain.CafeRepository, users domain.UserRepository) *ReviewService {
	return &ReviewService{reviews: reviews, cafes: cafes, users: users, now: time.Now}
}

// Add 作者必须已登录，店必须存在
func (s *ReviewService) Add(ctx context.Context, author *domain.User, cafeID uint, body string) (*domain.Review, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	c, err := s.cafes.FindByID(ctx, cafeID)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	if c == nil {
		return nil, ErrCafeNotFound
	}
	rv := &domain.Review{
		Date:     domain.ReviewDate(s.now()),
		Body:     body,
		AuthorID: author.ID,
		CafeID:   c.ID,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	rv.Author = author
	return rv, nil
}

func (s *ReviewService) ListForCafe(ctx context.Context, cafeID uint) ([]domain.Review, error) {
	return s.reviews.ListByCafe(ctx, cafeID)
}

func (s *ReviewService) ListByAuthor(ctx context.Context, userID uint) (*domain.User, []domain.Review, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}
	if u == nil {
		return nil, nil, ErrUserNotFound
	}
	rvs, err := s.reviews.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}
	return u, rvs, nil
}

// Delete 返回被删评论（跳回所属店铺页用）
func (s *ReviewService) Delete(ctx context.Context, id uint) (*domain.Review, error) {
	rv, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	if rv == nil {
		return nil, ErrReviewNotFound
	}
	if _, err := s.reviews.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	return rv, nil
}
