package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// ListBooksUseCase 分页浏览图书
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest Author、Genre为不区分大小写的子串过滤；Page、Limit为0时取默认值
type ListBooksRequest struct {
	Author string
	Genre  string
	Page   int
	Limit  int
}

// ListBooksResponse 列表响应
type ListBooksResponse struct {
	Books []BookInfo
	Total int64
	Page  int
	Limit int
}

// Execute 执行查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	page, limit := req.Page, req.Limit
	if page == 0 {
		page = book.DefaultPage
	}
	if limit == 0 {
		limit = book.DefaultLimit
	}

	books, total, err := uc.bookService.List(ctx, book.ListParams{
		Author: req.Author,
		Genre:  req.Genre,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Books: toBookInfos(books),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// SearchBooksUseCase 按书名或作者搜索，不分页
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, query string) ([]BookInfo, error) {
	books, err := uc.bookService.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toBookInfos(books), nil
}
