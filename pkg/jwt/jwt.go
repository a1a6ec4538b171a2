package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

const issuer = "bookreview"

// TokenType 区分Access与Refresh，防止Refresh Token被当作Access Token使用
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 双Token机制：Access Token（短期，默认15分钟）+ Refresh Token（长期，默认7天）
// 2. 两种Token使用不同的签名密钥，泄露其一不影响另一种
type Manager struct {
	accessSecret       string
	refreshSecret      string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
// refreshSecret为空时退化为与accessSecret相同
func NewManager(accessSecret, refreshSecret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	return &Manager{
		accessSecret:       accessSecret,
		refreshSecret:      refreshSecret,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		now:                time.Now,
	}
}

// Claims 自定义JWT Claims
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
// 2. 自定义字段：用户ID、用户名、邮箱、Token类型
type Claims struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // Access Token有效期（秒）
}

// AccessTokenExpire Access Token有效期
func (m *Manager) AccessTokenExpire() time.Duration { return m.accessTokenExpire }

// RefreshTokenExpire Refresh Token有效期
func (m *Manager) RefreshTokenExpire() time.Duration { return m.refreshTokenExpire }

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint, username, email string) (*TokenPair, error) {
	accessToken, err := m.sign(userID, username, email, TokenTypeAccess)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	refreshToken, err := m.sign(userID, username, email, TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// GenerateAccessToken 只签发Access Token（刷新时使用）
func (m *Manager) GenerateAccessToken(userID uint, username, email string) (string, error) {
	token, err := m.sign(userID, username, email, TokenTypeAccess)
	if err != nil {
		return "", apperrors.Wrap(err, "生成Access Token失败")
	}
	return token, nil
}

// ParseToken 解析并验证Access Token
// 学习要点：
// 1. 验证签名与算法（防止alg=none等伪造）
// 2. 验证过期时间（exp）与生效时间（nbf）
// 3. 验证Token类型
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken 解析并验证Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

// RefreshAccessToken 使用Refresh Token换取新的Access Token
func (m *Manager) RefreshAccessToken(refreshToken string) (string, *Claims, error) {
	claims, err := m.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", nil, err
	}

	token, err := m.sign(claims.UserID, claims.Username, claims.Email, TokenTypeAccess)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "刷新Token失败")
	}
	return token, claims, nil
}

func (m *Manager) sign(userID uint, username, email string, typ TokenType) (string, error) {
	now := m.now()
	secret, ttl := m.accessSecret, m.accessTokenExpire
	if typ == TokenTypeRefresh {
		secret, ttl = m.refreshSecret, m.refreshTokenExpire
	}

	claims := Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (m *Manager) parse(tokenString string, typ TokenType) (*Claims, error) {
	secret := m.accessSecret
	if typ == TokenTypeRefresh {
		secret = m.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != typ || claims.UserID == 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
