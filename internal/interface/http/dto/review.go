package dto

// ReviewRequest 提交和修改书评共用，修改时缺省comment会清除原评论
type ReviewRequest struct {
	Rating  *int   `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"max=500" example:"A timeless classic"`
}

// ReviewResponse 书评（swagger文档用）
type ReviewResponse struct {
	ID         uint            `json:"id" example:"1"`
	BookID     uint            `json:"bookId" example:"1"`
	ReviewerID uint            `json:"reviewerId" example:"2"`
	Rating     int             `json:"rating" example:"5"`
	Comment    string          `json:"comment" example:"A timeless classic"`
	Reviewer   *PublicUserInfo `json:"reviewer,omitempty"`
	CreatedAt  string          `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt  string          `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// ReviewPageResponse 详情中的书评分页块
type ReviewPageResponse struct {
	Total       int64            `json:"total" example:"3"`
	CurrentPage int              `json:"currentPage" example:"1"`
	TotalPages  int              `json:"totalPages" example:"1"`
	Data        []ReviewResponse `json:"data"`
}

// ReviewSavedResponse 提交或修改书评的响应
type ReviewSavedResponse struct {
	Message string         `json:"message" example:"Review submitted successfully"`
	Review  ReviewResponse `json:"review"`
}
