package user

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

var (
	// ErrUserDuplicate 用户名或邮箱已被注册（由唯一索引检测）
	ErrUserDuplicate = apperrors.New(apperrors.ErrCodeUserDuplicate, "User already exists")

	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrInvalidCredentials 邮箱不存在和密码错误共用同一个错误
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials

	ErrInvalidUsername = apperrors.BadRequest("Username must be between 3 and 30 characters")
	ErrInvalidEmail    = apperrors.BadRequest("Please provide a valid email address")
	ErrInvalidPassword = apperrors.BadRequest("Password must be between 8 and 72 characters")
)
