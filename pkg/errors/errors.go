package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类型，HTTPStatus根据Code的区段映射出HTTP状态码
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同一错误码即视为同一错误
// 说明：预定义错误可能被WithCause复制，复制后仍需满足errors.Is
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithCause 复制错误并附带底层原因
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// BadRequest 参数校验失败（400）
func BadRequest(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 业务规则错误（含重复记录）
// - 401xx: 认证错误
// - 404xx: 资源不存在
// - 409xx: 参数错误
// - 429xx: 限流
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 账号或密码错误
	ErrCodeTokenRevoked       = 40104 // Token已注销

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeReviewNotFound = 40403 // 书评不存在
	ErrCodeRouteNotFound  = 40404 // 路由不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError   = 40000 // 业务错误(通用)
	ErrCodeUserDuplicate   = 40003 // 用户名或邮箱已存在
	ErrCodeReviewDuplicate = 40004 // 重复书评
	ErrCodeDuplicateEntry  = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeInvalidID     = 40902 // ID格式错误

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal Server Error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Internal Server Error")
	ErrRedisError    = New(ErrCodeRedisError, "Internal Server Error")

	// 认证
	ErrUnauthorized       = New(ErrCodeUnauthorized, "No token provided")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token expired")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrTokenRevoked       = New(ErrCodeTokenRevoked, "Token has been revoked")

	// 资源不存在
	ErrNotFound      = New(ErrCodeNotFound, "Resource not found")
	ErrUserNotFound  = New(ErrCodeUserNotFound, "User not found")
	ErrRouteNotFound = New(ErrCodeRouteNotFound, "Page not found")

	// 业务规则
	ErrDuplicateEntry = New(ErrCodeDuplicateEntry, "Duplicate entry")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")

	// 限流
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal Server Error")
}

// HTTPStatus 业务错误码 → HTTP状态码
// 说明：重复记录（400xx）沿用400而非409
func HTTPStatus(code int) int {
	switch code / 100 {
	case 400, 409:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 404:
		return http.StatusNotFound
	case 429:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
