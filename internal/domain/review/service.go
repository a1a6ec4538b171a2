package review

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// 书评分页默认值
const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// Service 书评领域服务
// 图书和用户是否存在由应用层检查，这里只维护书评自身的规则
type Service interface {
	// Submit 依赖唯一索引检测重复，不做先查后插
	Submit(ctx context.Context, bookID, reviewerID uint, rating int, comment string) (*Review, error)

	// Update 查询和写入在同一事务内完成
	Update(ctx context.Context, bookID, reviewID, reviewerID uint, rating int, comment string) (*Review, error)

	// Delete 返回被删除的书评
	Delete(ctx context.Context, bookID, reviewID, reviewerID uint) (*Review, error)

	ListByBook(ctx context.Context, bookID uint, page, limit int) ([]*Review, int64, error)

	// AverageRating 全部评分的平均值，保留一位小数
	AverageRating(ctx context.Context, bookID uint) (float64, error)
}

type service struct {
	repo Repository
	tx   Transactor
}

// NewService 创建书评领域服务
func NewService(repo Repository, tx Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) Submit(ctx context.Context, bookID, reviewerID uint, rating int, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

	r := NewReview(bookID, reviewerID, rating, comment)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Update(ctx context.Context, bookID, reviewID, reviewerID uint, rating int, comment string) (*Review, error) {
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

	var updated *Review
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.FindOwnedForUpdate(ctx, reviewID, bookID, reviewerID)
		if err != nil {
			return err
		}
		r.Revise(rating, comment)
		if err := s.repo.Update(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, bookID, reviewID, reviewerID uint) (*Review, error) {
	var deleted *Review
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.FindOwnedForUpdate(ctx, reviewID, bookID, reviewerID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, r.ID); err != nil {
			return err
		}
		deleted = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *service) ListByBook(ctx context.Context, bookID uint, page, limit int) ([]*Review, int64, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 || limit < 1 || limit > MaxLimit {
		return nil, 0, ErrInvalidPagination
	}
	return s.repo.ListByBook(ctx, bookID, page, limit)
}

func (s *service) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	summary, err := s.repo.Summarize(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return summary.Average(), nil
}

// FormatRating 一位小数字符串，如 "4.0"
func FormatRating(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

func validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(strings.TrimSpace(comment)) > 500 {
		return ErrInvalidComment
	}
	return nil
}
