package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/mq"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

// UpdateReviewUseCase 修改自己的书评
type UpdateReviewUseCase struct {
	bookService   book.Service
	reviewService review.Service
	publisher     mq.EventPublisher
}

// NewUpdateReviewUseCase 创建修改书评用例
func NewUpdateReviewUseCase(bookService book.Service, reviewService review.Service, publisher mq.EventPublisher) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{
		bookService:   bookService,
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// UpdateReviewRequest 修改请求，Comment为空会清除原评论
type UpdateReviewRequest struct {
	BookID     uint
	ReviewID   uint
	ReviewerID uint
	Rating     int
	Comment    string
}

// Execute 书评必须同时匹配ID、图书和作者，否则返回ErrReviewNotFound
func (uc *UpdateReviewUseCase) Execute(ctx context.Context, req UpdateReviewRequest) (info *ReviewInfo, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateReview")
	defer func() {
		metrics.RecordReview("update", resultLabel(err))
		tracing.EndSpan(span, err)
	}()

	if _, err = uc.bookService.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	r, err := uc.reviewService.Update(ctx, req.BookID, req.ReviewID, req.ReviewerID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, newReviewEvent(EventReviewUpdated, r))

	result := ToReviewInfo(r)
	return &result, nil
}
