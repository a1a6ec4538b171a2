package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// reviewRepository 书评仓储的GORM实现
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 直接插入，由uk_book_reviewer检测重复
// 并发的重复提交只有一条能插入成功，其余得到ErrReviewDuplicate
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		ReviewerID: rv.ReviewerID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate.WithCause(err)
		}
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindOwnedForUpdate SELECT ... FOR UPDATE，需在事务内调用
// SQLite方言会忽略锁子句
func (r *reviewRepository) FindOwnedForUpdate(ctx context.Context, reviewID, bookID, reviewerID uint) (*review.Review, error) {
	var model ReviewModel
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND book_id = ? AND reviewer_id = ?", reviewID, bookID, reviewerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toReviewEntity(&model), nil
}

// Update 只更新评分和评论；用map保证空评论也会写入
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	now := time.Now().UTC()
	result := dbFromContext(ctx, r.db).
		Model(&ReviewModel{ID: rv.ID}).
		Updates(map[string]interface{}{
			"rating":     rv.Rating,
			"comment":    rv.Comment,
			"updated_at": now,
		})
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}
	rv.UpdatedAt = now
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, page, limit int) ([]*review.Review, int64, error) {
	db := dbFromContext(ctx, r.db)

	var total int64
	if err := db.Model(&ReviewModel{}).Where("book_id = ?", bookID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	var models []ReviewModel
	err := db.Preload("Reviewer", publicUserColumns).
		Where("book_id = ?", bookID).
		Order(newestFirst).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	reviews := make([]*review.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewEntity(&models[i]))
	}
	return reviews, total, nil
}

// Summarize 汇总全部评分，不受分页影响
func (r *reviewRepository) Summarize(ctx context.Context, bookID uint) (review.RatingSummary, error) {
	var row struct {
		TotalRating int64
		ReviewCount int64
	}
	err := dbFromContext(ctx, r.db).
		Model(&ReviewModel{}).
		Select("COALESCE(SUM(rating), 0) AS total_rating, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return review.RatingSummary{}, apperrors.ErrDatabaseError.WithCause(err)
	}
	return review.RatingSummary{Sum: row.TotalRating, Count: row.ReviewCount}, nil
}

func toReviewEntity(model *ReviewModel) *review.Review {
	rv := &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		ReviewerID: model.ReviewerID,
		Rating:     model.Rating,
		Comment:    model.Comment,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if model.Reviewer != nil {
		rv.Reviewer = &review.Reviewer{
			ID:       model.Reviewer.ID,
			Username: model.Reviewer.Username,
			Email:    model.Reviewer.Email,
		}
	}
	return rv
}
