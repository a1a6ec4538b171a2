package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	appbook "github.com/xiebiao/bookreview/internal/application/book"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/internal/interface/http/validator"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	bulkCreateUseCase  *appbook.BulkCreateBooksUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	bookDetailUseCase  *appbook.GetBookDetailUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	bulkCreateUseCase *appbook.BulkCreateBooksUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	bookDetailUseCase *appbook.GetBookDetailUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		bulkCreateUseCase:  bulkCreateUseCase,
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		bookDetailUseCase:  bookDetailUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookCreatedResponse
// @Failure      400 {object} dto.ErrorResponse "参数错误"
// @Failure      401 {object} dto.ErrorResponse "未登录"
// @Router       /api/v1/bookstore/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		BookFields: appbook.BookFields{
			Title:         req.Title,
			Author:        req.Author,
			Genre:         req.Genre,
			Description:   req.Description,
			PublishedYear: req.PublishedYear,
		},
		CreatorID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book created successfully", gin.H{"book": result})
}

// BulkCreateBooks 批量创建图书
// @Summary      批量创建图书
// @Description  books必须是非空数组；逐条插入，失败时已插入的条目保留
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BulkCreateBooksRequest true "图书列表"
// @Success      201 {object} dto.BooksCreatedResponse
// @Failure      400 {object} dto.ErrorResponse "No books provided for insertion"
// @Router       /api/v1/bookstore/books/bulk [post]
func (h *BookHandler) BulkCreateBooks(c *gin.Context) {
	var req dto.BulkCreateBooksRequest
	// 空请求体等同于缺少books
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperrors.BadRequest(validator.Translate(err)))
		return
	}

	items, err := decodeBulkItems(req.Books)
	if err != nil {
		response.Error(c, err)
		return
	}

	fields := make([]appbook.BookFields, len(items))
	for i, item := range items {
		fields[i] = appbook.BookFields{
			Title:         item.Title,
			Author:        item.Author,
			Genre:         item.Genre,
			Description:   item.Description,
			PublishedYear: item.PublishedYear,
		}
	}

	result, err := h.bulkCreateUseCase.Execute(c.Request.Context(), appbook.BulkCreateBooksRequest{
		Books:     fields,
		CreatorID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Books created successfully", gin.H{"books": result.Books, "count": result.Count})
}

// decodeBulkItems books缺失、不是数组或为空都返回ErrNoBooksProvided
func decodeBulkItems(raw json.RawMessage) ([]dto.BulkBookItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, book.ErrNoBooksProvided
	}

	var items []dto.BulkBookItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, apperrors.BadRequest(validator.Translate(err))
	}
	if len(items) == 0 {
		return nil, book.ErrNoBooksProvided
	}

	for i := range items {
		if err := binding.Validator.ValidateStruct(&items[i]); err != nil {
			return nil, apperrors.BadRequest(validator.Translate(err))
		}
	}
	return items, nil
}

// ListBooks 分页浏览图书
// @Summary      图书列表
// @Description  author、genre为不区分大小写的子串匹配，按创建时间倒序
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        author query string false "作者"
// @Param        genre  query string false "类型"
// @Param        page   query int    false "页码" default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Success      200 {object} dto.BookListResponse
// @Failure      400 {object} dto.ErrorResponse "分页参数错误"
// @Router       /api/v1/bookstore/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, book.ErrInvalidPagination)
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Author: query.Author,
		Genre:  query.Genre,
		Page:   derefInt(query.Page),
		Limit:  derefInt(query.Limit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Books retrieved successfully", gin.H{
		"books":      result.Books,
		"pagination": response.NewPagination(result.Total, result.Page, result.Limit),
	})
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  按书名或作者做不区分大小写的子串匹配，不分页
// @Tags         图书
// @Produce      json
// @Param        query query string true "关键词"
// @Success      200 {object} dto.BookSearchResponse
// @Failure      400 {object} dto.ErrorResponse "Search query is required"
// @Failure      404 {object} dto.ErrorResponse "No books found"
// @Router       /api/v1/bookstore/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, book.ErrSearchQueryRequired)
		return
	}

	books, err := h.searchBooksUseCase.Execute(c.Request.Context(), query.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Books retrieved successfully", gin.H{"books": books})
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  图书、创建者、一页书评和全部评分的平均分
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "图书ID"
// @Param        page  query int false "书评页码" default(1)
// @Param        limit query int false "每页书评数" default(5)
// @Success      200 {object} dto.BookDetailResponse
// @Failure      400 {object} dto.ErrorResponse "Invalid book ID"
// @Failure      404 {object} dto.ErrorResponse "Book not found"
// @Router       /api/v1/bookstore/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := parseID(c, "id", errInvalidBookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.BookDetailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, book.ErrInvalidPagination)
		return
	}

	result, err := h.bookDetailUseCase.Execute(c.Request.Context(), appbook.BookDetailRequest{
		BookID: bookID,
		Page:   derefInt(query.Page),
		Limit:  derefInt(query.Limit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Book fetched successfully", gin.H{
		"book":          result.Book,
		"averageRating": result.AverageRating,
		"reviews":       result.Reviews,
	})
}
