package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/mq"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

// DeleteReviewUseCase 删除自己的书评（物理删除）
type DeleteReviewUseCase struct {
	bookService   book.Service
	reviewService review.Service
	publisher     mq.EventPublisher
}

// NewDeleteReviewUseCase 创建删除书评用例
func NewDeleteReviewUseCase(bookService book.Service, reviewService review.Service, publisher mq.EventPublisher) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{
		bookService:   bookService,
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// DeleteReviewRequest 删除请求
type DeleteReviewRequest struct {
	BookID     uint
	ReviewID   uint
	ReviewerID uint
}

// Execute 执行删除
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, req DeleteReviewRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteReview")
	defer func() {
		metrics.RecordReview("delete", resultLabel(err))
		tracing.EndSpan(span, err)
	}()

	if _, err = uc.bookService.GetByID(ctx, req.BookID); err != nil {
		return err
	}

	r, err := uc.reviewService.Delete(ctx, req.BookID, req.ReviewID, req.ReviewerID)
	if err != nil {
		return err
	}

	publishEvent(ctx, uc.publisher, newReviewEvent(EventReviewDeleted, r))
	return nil
}
