package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	submitUseCase *appreview.SubmitReviewUseCase
	updateUseCase *appreview.UpdateReviewUseCase
	deleteUseCase *appreview.DeleteReviewUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(
	submitUseCase *appreview.SubmitReviewUseCase,
	updateUseCase *appreview.UpdateReviewUseCase,
	deleteUseCase *appreview.DeleteReviewUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		submitUseCase: submitUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// SubmitReview 提交书评
// @Summary      提交书评
// @Description  每个用户对同一本书只能提交一条书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "图书ID"
// @Param        request body dto.ReviewRequest true "评分和评论"
// @Success      201 {object} dto.ReviewSavedResponse
// @Failure      400 {object} dto.ErrorResponse "参数错误或重复提交"
// @Failure      404 {object} dto.ErrorResponse "图书或用户不存在"
// @Router       /api/v1/bookstore/books/{id}/review [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	bookID, err := parseID(c, "id", errInvalidBookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.submitUseCase.Execute(c.Request.Context(), appreview.SubmitReviewRequest{
		BookID:     bookID,
		ReviewerID: middleware.MustGetUserID(c),
		Rating:     derefInt(req.Rating),
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Review submitted successfully", gin.H{"review": result})
}

// UpdateReview 修改书评
// @Summary      修改书评
// @Description  只能修改自己在该图书下的书评，缺省comment会清除原评论
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path int               true "图书ID"
// @Param        reviewId path int               true "书评ID"
// @Param        request  body dto.ReviewRequest true "评分和评论"
// @Success      200 {object} dto.ReviewSavedResponse
// @Failure      400 {object} dto.ErrorResponse "参数错误"
// @Failure      404 {object} dto.ErrorResponse "图书或书评不存在"
// @Router       /api/v1/bookstore/books/{id}/review/{reviewId} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	bookID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appreview.UpdateReviewRequest{
		BookID:     bookID,
		ReviewID:   reviewID,
		ReviewerID: middleware.MustGetUserID(c),
		Rating:     derefInt(req.Rating),
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Review updated successfully", gin.H{"review": result})
}

// DeleteReview 删除书评
// @Summary      删除书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id       path int true "图书ID"
// @Param        reviewId path int true "书评ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} dto.ErrorResponse "ID格式错误"
// @Failure      404 {object} dto.ErrorResponse "图书或书评不存在"
// @Router       /api/v1/bookstore/books/{id}/review/{reviewId} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	bookID, reviewID, err := parseReviewPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = h.deleteUseCase.Execute(c.Request.Context(), appreview.DeleteReviewRequest{
		BookID:     bookID,
		ReviewID:   reviewID,
		ReviewerID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Review deleted successfully", nil)
}

func parseReviewPath(c *gin.Context) (bookID, reviewID uint, err error) {
	if bookID, err = parseID(c, "id", errInvalidBookID); err != nil {
		return 0, 0, err
	}
	if reviewID, err = parseID(c, "reviewId", errInvalidReviewID); err != nil {
		return 0, 0, err
	}
	return bookID, reviewID, nil
}
