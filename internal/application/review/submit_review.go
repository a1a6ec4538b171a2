package review

import (
	"context"
	"errors"
	"net/http"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/mq"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

const tracerName = "review"

// SubmitReviewUseCase 提交书评
// 检查图书和用户存在 → 插入（唯一索引兜底并发重复）→ 发布事件
type SubmitReviewUseCase struct {
	bookService   book.Service
	userService   user.Service
	reviewService review.Service
	publisher     mq.EventPublisher
}

// NewSubmitReviewUseCase 创建提交书评用例
func NewSubmitReviewUseCase(
	bookService book.Service,
	userService user.Service,
	reviewService review.Service,
	publisher mq.EventPublisher,
) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		bookService:   bookService,
		userService:   userService,
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// SubmitReviewRequest 提交书评请求
type SubmitReviewRequest struct {
	BookID     uint
	ReviewerID uint
	Rating     int
	Comment    string
}

// Execute 执行提交
func (uc *SubmitReviewUseCase) Execute(ctx context.Context, req SubmitReviewRequest) (info *ReviewInfo, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SubmitReview")
	defer func() {
		metrics.RecordReview("submit", resultLabel(err))
		tracing.EndSpan(span, err)
	}()

	if _, err = uc.bookService.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if _, err = uc.userService.GetByID(ctx, req.ReviewerID); err != nil {
		return nil, err
	}

	r, err := uc.reviewService.Submit(ctx, req.BookID, req.ReviewerID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, newReviewEvent(EventReviewSubmitted, r))

	result := ToReviewInfo(r)
	return &result, nil
}

// resultLabel 指标的result标签
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, review.ErrReviewDuplicate) {
		return "duplicate"
	}
	switch apperrors.HTTPStatus(apperrors.GetAppError(err).Code) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "invalid"
	default:
		return "error"
	}
}
