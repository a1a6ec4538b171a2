package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Service 用户领域服务
type Service interface {
	// Register 注册：规范化 → PreparePassword → 持久化
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Authenticate 校验邮箱和密码，两种失败都返回ErrInvalidCredentials
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID 按ID加载用户
	GetByID(ctx context.Context, id uint) (*User, error)

	// PreparePassword 持久化前的密码哈希步骤
	PreparePassword(plain string) (string, error)

	// ValidatePassword 比对明文和哈希
	ValidatePassword(hashedPassword, plainPassword string) error
}

// DefaultHashCost bcrypt代价，每+1耗时翻倍
const DefaultHashCost = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type service struct {
	repo     Repository
	hashCost int
}

// Option 用户服务选项
type Option func(*service)

// WithHashCost 指定bcrypt代价，测试中用bcrypt.MinCost加快速度
func WithHashCost(cost int) Option {
	return func(s *service) { s.hashCost = cost }
}

// NewService 创建用户服务
func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, hashCost: DefaultHashCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 30 {
		return nil, ErrInvalidUsername
	}
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	hashed, err := s.PreparePassword(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(username, email, hashed)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// PreparePassword bcrypt只处理前72字节，超长密码直接拒绝而不是静默截断
func (s *service) PreparePassword(plain string) (string, error) {
	if len(plain) < 8 || len(plain) > 72 {
		return "", ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.hashCost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "密码验证失败")
}
