package book

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 图书领域错误
var (
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrNoBooksFound 搜索无结果
	ErrNoBooksFound = apperrors.New(apperrors.ErrCodeNotFound, "No books found")

	ErrNoBooksProvided     = apperrors.BadRequest("No books provided for insertion")
	ErrSearchQueryRequired = apperrors.BadRequest("Search query is required")

	ErrInvalidTitle          = apperrors.BadRequest("Title must be between 3 and 100 characters")
	ErrInvalidAuthor         = apperrors.BadRequest("Author must be between 3 and 100 characters")
	ErrInvalidGenre          = apperrors.BadRequest("Genre must be between 3 and 50 characters")
	ErrInvalidDescription    = apperrors.BadRequest("Description cannot exceed 500 characters")
	ErrPublishedYearRequired = apperrors.BadRequest("Published year is required")
	ErrInvalidPublishedYear  = apperrors.BadRequest("Published year must be between 1900 and the current year")
	ErrInvalidPagination     = apperrors.BadRequest("Page and limit must be positive integers")
)
