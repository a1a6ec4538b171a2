package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/mq"
)

// 书评事件routing key
const (
	EventReviewSubmitted = "review.submitted"
	EventReviewUpdated   = "review.updated"
	EventReviewDeleted   = "review.deleted"
)

// ReviewEvent 书评变更事件
type ReviewEvent struct {
	Type       string    `json:"type"`
	ReviewID   uint      `json:"reviewId"`
	BookID     uint      `json:"bookId"`
	ReviewerID uint      `json:"reviewerId"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newReviewEvent(eventType string, r *review.Review) ReviewEvent {
	return ReviewEvent{
		Type:       eventType,
		ReviewID:   r.ID,
		BookID:     r.BookID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		OccurredAt: time.Now().UTC(),
	}
}

// publishEvent 发布失败只记日志，书评写入已经提交
func publishEvent(ctx context.Context, publisher mq.EventPublisher, event ReviewEvent) {
	if err := publisher.Publish(ctx, event.Type, event); err != nil {
		slog.WarnContext(ctx, "publish review event failed",
			"type", event.Type,
			"review_id", event.ReviewID,
			"error", err,
		)
	}
}
