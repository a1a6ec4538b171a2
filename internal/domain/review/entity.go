package review

import (
	"strings"
	"time"
)

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// Review 书评实体
// (BookID, ReviewerID) 唯一：同一用户对同一本书只能有一条书评
type Review struct {
	ID         uint
	BookID     uint
	ReviewerID uint
	Rating     int
	Comment    string
	Reviewer   *Reviewer // 查询时填充
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reviewer 书评作者的公开信息
type Reviewer struct {
	ID       uint
	Username string
	Email    string
}

// NewReview 创建书评
func NewReview(bookID, reviewerID uint, rating int, comment string) *Review {
	now := time.Now()
	return &Review{
		BookID:     bookID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Revise 覆盖评分和评论，评论为空即清除
func (r *Review) Revise(rating int, comment string) {
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
}

// RatingSummary 一本书全部评分的汇总
type RatingSummary struct {
	Sum   int64
	Count int64
}

// Average 平均分，四舍五入保留一位小数，无评分时为0
// 用整数运算避免 4.35 这类值因浮点误差被舍掉
func (s RatingSummary) Average() float64 {
	if s.Count <= 0 {
		return 0
	}
	tenths := (s.Sum*20 + s.Count) / (2 * s.Count)
	return float64(tenths) / 10
}
