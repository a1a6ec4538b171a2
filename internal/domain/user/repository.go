package user

import (
	"context"
)

// Repository 用户仓储接口，实现在infrastructure/persistence/mysql
type Repository interface {
	// Create 用户名或邮箱重复时返回ErrUserDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在时返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 邮箱需已规范化；不存在时返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)
}
