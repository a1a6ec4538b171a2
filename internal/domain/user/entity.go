package user

import (
	"strings"
	"time"
)

// User 用户实体（聚合根）
// Password只保存bcrypt哈希，任何对外输出都不能带上它
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户，hashedPassword必须已经过PreparePassword处理
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  strings.TrimSpace(username),
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail 去空白并转小写，注册和登录都要先经过这里
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
