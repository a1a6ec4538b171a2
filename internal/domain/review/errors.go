package review

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

var (
	// ErrReviewDuplicate 唯一索引冲突
	ErrReviewDuplicate = apperrors.New(apperrors.ErrCodeReviewDuplicate, "You have already reviewed this book")

	// ErrReviewNotFound 书评不存在，或不属于当前用户，或不属于该图书
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "Review not found")

	ErrInvalidRating  = apperrors.BadRequest("Rating must be an integer between 1 and 5")
	ErrInvalidComment = apperrors.BadRequest("Comment cannot exceed 500 characters")

	ErrInvalidPagination = apperrors.BadRequest("Page and limit must be positive integers")
)
