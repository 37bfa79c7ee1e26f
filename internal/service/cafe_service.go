package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"cafe-directory/internal/core/cache"
	"cafe-directory/internal/domain"
	"cafe-directory/internal/repo"
)

// 缓存命名空间，任何写操作都会 Bump
const cacheNS = "cafes"

type CafeService struct {
	cafes domain.CafeRepository
	cache *cache.Cache
	log   *zap.Logger
}

// NewCafeService cache 可为 nil（每次读库）
func NewCafeService(cafes domain.CafeRepository, c *cache.Cache, l *zap.Logger) *CafeService {
	if l == nil {
		l = zap.NewNop()
	}
	return &CafeService{cafes: cafes, cache: c, log: l}
}

func (s *CafeService) List(ctx context.Context) ([]domain.Cafe, error) {
	c, key := s.cacheFor(ctx, "all")
	out, err := cache.GetOrLoadJSON(c, ctx, key, func(ctx context.Context) (*[]domain.Cafe, error) {
		cafes, err := s.cafes.List(ctx)
		if err != nil {
			return nil, err
		}
		return &cafes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (s *CafeService) Get(ctx context.Context, id uint) (*domain.Cafe, error) {
	c, err := s.cafes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cafe: %w", err)
	}
	if c == nil {
		return nil, ErrCafeNotFound
	}
	return c, nil
}

// SearchByName 精确匹配，找不到不做模糊回退
func (s *CafeService) SearchByName(ctx context.Context, name string) (*domain.Cafe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCafeNotFound
	}
	cc, key := s.cacheFor(ctx, "name:"+name)
	c, err := cache.GetOrLoadJSON(cc, ctx, key, func(ctx context.Context) (*domain.Cafe, error) {
		return s.cafes.FindByName(ctx, name)
	})
	if err != nil {
		return nil, fmt.Errorf("search cafe: %w", err)
	}
	if c == nil {
		return nil, ErrCafeNotFound
	}
	return c, nil
}

func (s *CafeService) Add(ctx context.Context, c *domain.Cafe) error {
	existing, err := s.cafes.FindByName(ctx, c.Name)
	if err != nil {
		return fmt.Errorf("add cafe: %w", err)
	}
	if existing != nil {
		return ErrDuplicateCafe
	}
	if err := s.cafes.Create(ctx, c); err != nil {
		if repo.IsDuplicateKey(err) {
			return ErrDuplicateCafe
		}
		return fmt.Errorf("add cafe: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// UpdateHours 原样写入，不校验时间格式；只挡掉空值和超出列宽的值
func (s *CafeService) UpdateHours(ctx context.Context, id uint, field domain.HoursField, value string) error {
	if value == "" {
		return ErrEmptyValue
	}
	if utf8.RuneCountInString(value) > domain.HoursMaxLen {
		return ErrValueTooLong
	}
	ok, err := s.cafes.UpdateHours(ctx, id, field, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	if !ok {
		return ErrCafeNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CafeService) Delete(ctx context.Context, id uint) error {
	ok, err := s.cafes.DeleteWithReviews(ctx, id)
	if err != nil {
		return fmt.Errorf("delete cafe: %w", err)
	}
	if !ok {
		return ErrCafeNotFound
	}
	s.invalidate(ctx)
	return nil
}

// cacheFor 取不到代号时返回 nil 缓存，本次直接读库
func (s *CafeService) cacheFor(ctx context.Context, name string) (*cache.Cache, string) {
	key, err := s.cache.VersionedKey(ctx, cacheNS, name)
	if err != nil {
		s.log.Warn("cafe cache unavailable", zap.Error(err))
		return nil, ""
	}
	return s.cache, key
}

func (s *CafeService) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, cacheNS); err != nil {
		s.log.Warn("cafe cache invalidate failed", zap.Error(err))
	}
}
