package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:250;not null" json:"-"`
	Name         string    `gorm:"size:250;not null" json:"name"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id uint, role Role) error
	DeleteWithReviews(ctx context.Context, id uint) (bool, error)
}
