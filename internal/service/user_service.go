package service

import (
	"context"
	"fmt"
	"strings"

	"cafe-directory/internal/core/auth"
	"cafe-directory/internal/domain"
	"cafe-directory/internal/repo"
)

type PasswordHasher interface {
	Hash(pw string) (string, error)
	Check(pw, hashed string) bool
}

type UserService struct {
	users  domain.UserRepository
	hasher PasswordHasher
}

func NewUserService(users domain.UserRepository, hasher PasswordHasher) *UserService {
	if hasher == nil {
		hasher = auth.Hasher{Iterations: auth.DefaultIter}
	}
	return &UserService{users: users, hasher: hasher}
}

// Register 先查重再哈希；第一个注册的用户是管理员
func (s *UserService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = normalizeEmail(email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	role := domain.RoleUser
	if n == 0 {
		role = domain.RoleAdmin
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发下的唯一冲突按重复邮箱处理
		if repo.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if u == nil || !s.hasher.Check(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Delete 连同该用户的评论一起删
func (s *UserService) Delete(ctx context.Context, id uint) error {
	ok, err := s.users.DeleteWithReviews(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) GrantAdmin(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := s.users.UpdateRole(ctx, u.ID, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	u.Role = domain.RoleAdmin
	return u, nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
