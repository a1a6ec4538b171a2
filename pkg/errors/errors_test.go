package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		code int
		want int
	}{
		{"参数错误", ErrCodeInvalidParams, http.StatusBadRequest},
		{"重复记录仍为400", ErrCodeReviewDuplicate, http.StatusBadRequest},
		{"未登录", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"资源不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"限流", ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"内部错误", ErrCodeDatabaseError, http.StatusInternalServerError},
		{"未知错误码", 12345, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.code))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		wrapped := fmt.Errorf("layer: %w", ErrInvalidCredentials)
		assert.Same(t, ErrInvalidCredentials, GetAppError(wrapped))
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Equal(t, "Internal Server Error", appErr.Message)
		assert.ErrorIs(t, appErr, cause)
	})
}

func TestWithCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := ErrDuplicateEntry.WithCause(cause)

	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, ErrDuplicateEntry.Err, "预定义错误不应被修改")
}
