package review

import (
	"time"

	"github.com/xiebiao/bookreview/internal/domain/review"
)

// ReviewInfo 书评响应
type ReviewInfo struct {
	ID         uint          `json:"id"`
	BookID     uint          `json:"bookId"`
	ReviewerID uint          `json:"reviewerId"`
	Rating     int           `json:"rating"`
	Comment    string        `json:"comment"`
	Reviewer   *ReviewerInfo `json:"reviewer,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ReviewerInfo 书评作者公开信息
type ReviewerInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToReviewInfo 实体转响应，Reviewer未加载时省略
func ToReviewInfo(r *review.Review) ReviewInfo {
	info := ReviewInfo{
		ID:         r.ID,
		BookID:     r.BookID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Reviewer != nil {
		info.Reviewer = &ReviewerInfo{
			ID:       r.Reviewer.ID,
			Username: r.Reviewer.Username,
			Email:    r.Reviewer.Email,
		}
	}
	return info
}

// ToReviewInfos 批量转换
func ToReviewInfos(reviews []*review.Review) []ReviewInfo {
	infos := make([]ReviewInfo, 0, len(reviews))
	for _, r := range reviews {
		infos = append(infos, ToReviewInfo(r))
	}
	return infos
}
