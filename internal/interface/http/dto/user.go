package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,min=3,max=30" example:"alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse 用户公开信息（swagger文档用）
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	CreatedAt string `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt string `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Message string       `json:"message" example:"User registered successfully"`
	User    UserResponse `json:"user"`
}

// LoginResponse 登录响应，accessToken同时写入HttpOnly Cookie
type LoginResponse struct {
	Message      string `json:"message" example:"User logged in successfully"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	Message     string `json:"message" example:"Token refreshed successfully"`
	AccessToken string `json:"accessToken"`
}

// MessageResponse 只有提示信息的响应
type MessageResponse struct {
	Message string `json:"message" example:"User logged out successfully"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Message string `json:"message" example:"Invalid credentials"`
	Error   string `json:"error,omitempty"`
}
