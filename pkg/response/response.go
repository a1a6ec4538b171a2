package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. HTTP状态码表达错误类别（400/401/404/429/500）
// 2. Message是用户友好的提示信息
// 3. Error仅在4xx时附带细节（如字段校验信息），5xx永远不返回内部错误
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// JSON 成功响应
// 用法：
//
//	response.JSON(c, http.StatusCreated, "Book created successfully", gin.H{"book": book})
//
// message与payload合并为同一层JSON对象
func JSON(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK 200成功响应
func OK(c *gin.Context, message string, payload gin.H) {
	JSON(c, http.StatusOK, message, payload)
}

// Created 201成功响应
func Created(c *gin.Context, message string, payload gin.H) {
	JSON(c, http.StatusCreated, message, payload)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	if status >= http.StatusInternalServerError {
		// 内部错误只写日志，客户端拿到的是固定文案
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("code", appErr.Code),
			slog.String("error", appErr.Error()),
		)
		c.JSON(status, ErrorBody{Message: "Internal Server Error"})
		return
	}

	c.JSON(status, ErrorBody{Message: appErr.Message})
}

// ErrorWithDetail 客户端错误附带细节
func ErrorWithDetail(c *gin.Context, err error, detail string) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		Error(c, err)
		return
	}
	c.JSON(status, ErrorBody{Message: appErr.Message, Error: detail})
}

// Abort 中间件使用：写错误响应并终止后续Handler
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// =========================================
// 分页响应结构
// =========================================

// Pagination 图书列表分页块
type Pagination struct {
	TotalBooks  int64 `json:"totalBooks"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

// NewPagination 创建分页块
func NewPagination(total int64, page, limit int) Pagination {
	return Pagination{
		TotalBooks:  total,
		TotalPages:  TotalPages(total, limit),
		CurrentPage: page,
		Limit:       limit,
	}
}

// TotalPages 向上取整计算总页数
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
