package review

import (
	"context"
)

// Repository 书评仓储接口
// 所有方法都会使用ctx中的事务（如果有）
type Repository interface {
	// Create 同一(book, reviewer)已存在时返回ErrReviewDuplicate
	Create(ctx context.Context, review *Review) error

	// FindOwnedForUpdate 按 id + book_id + reviewer_id 查询并加行锁
	// 任一条件不满足都返回ErrReviewNotFound
	FindOwnedForUpdate(ctx context.Context, reviewID, bookID, reviewerID uint) (*Review, error)

	Update(ctx context.Context, review *Review) error

	Delete(ctx context.Context, id uint) error

	// ListByBook 按创建时间倒序分页，带出作者信息
	ListByBook(ctx context.Context, bookID uint, page, limit int) ([]*Review, int64, error)

	// Summarize 统计一本书全部评分
	Summarize(ctx context.Context, bookID uint) (RatingSummary, error)
}

// Transactor 事务管理，由持久化层的TxManager实现
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
