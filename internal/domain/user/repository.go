package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	// Create 邮箱已存在时返回apperrors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回apperrors.ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 不存在时返回apperrors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, user *User) error
}
