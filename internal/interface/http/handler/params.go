package handler

import (
	"math/bits"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookreview/internal/interface/http/validator"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

var (
	errInvalidBookID   = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid book ID")
	errInvalidReviewID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid review ID")
)

// parseID 路径参数必须是能放进uint的正整数
func parseID(c *gin.Context, name string, invalid error) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, bits.UintSize)
	if err != nil || id == 0 {
		return 0, invalid
	}
	return uint(id), nil
}

// bindJSON 绑定失败时转成带可读文案的400
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.BadRequest(validator.Translate(err))
	}
	return nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
