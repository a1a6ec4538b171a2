package user

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// RefreshTokenUseCase 用Refresh Token换取新的Access Token
// 会重新加载用户，已删除的用户无法刷新
type RefreshTokenUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(userService user.Service, jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userService: userService, jwtManager: jwtManager}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := uc.userService.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{AccessToken: token}, nil
}
