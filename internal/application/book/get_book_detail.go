package book

import (
	"context"

	reviewapp "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

// GetBookDetailUseCase 图书详情：图书 + 一页书评 + 全部评分的平均分
type GetBookDetailUseCase struct {
	bookService   book.Service
	reviewService review.Service
}

// NewGetBookDetailUseCase 创建详情用例
func NewGetBookDetailUseCase(bookService book.Service, reviewService review.Service) *GetBookDetailUseCase {
	return &GetBookDetailUseCase{bookService: bookService, reviewService: reviewService}
}

// BookDetailRequest 书评分页默认 page=1 limit=5
type BookDetailRequest struct {
	BookID uint
	Page   int
	Limit  int
}

// BookDetailResponse 详情响应
type BookDetailResponse struct {
	Book          BookInfo   `json:"book"`
	AverageRating string     `json:"averageRating"`
	Reviews       ReviewPage `json:"reviews"`
}

// ReviewPage 书评分页块
type ReviewPage struct {
	Total       int64                  `json:"total"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
	Data        []reviewapp.ReviewInfo `json:"data"`
}

// Execute 平均分按全部书评计算，与当前页无关
func (uc *GetBookDetailUseCase) Execute(ctx context.Context, req BookDetailRequest) (resp *BookDetailResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "book", "GetBookDetail")
	defer func() { tracing.EndSpan(span, err) }()

	page, limit := req.Page, req.Limit
	if page == 0 {
		page = review.DefaultPage
	}
	if limit == 0 {
		limit = review.DefaultLimit
	}

	b, err := uc.bookService.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	reviews, total, err := uc.reviewService.ListByBook(ctx, b.ID, page, limit)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewService.AverageRating(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return &BookDetailResponse{
		Book:          toBookInfo(b),
		AverageRating: review.FormatRating(avg),
		Reviews: ReviewPage{
			Total:       total,
			CurrentPage: page,
			TotalPages:  totalPages(total, limit),
			Data:        reviewapp.ToReviewInfos(reviews),
		},
	}, nil
}
