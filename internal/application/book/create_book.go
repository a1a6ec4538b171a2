package book

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// CreateBookUseCase 创建单本图书
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest CreatorID取自当前登录用户
type CreateBookRequest struct {
	BookFields
	CreatorID uint
}

// Execute 执行创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookInfo, error) {
	b, err := uc.bookService.Create(ctx, req.draft(), req.CreatorID)
	if err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.BooksCreatedTotal, map[string]string{"mode": "single"})

	info := toBookInfo(b)
	return &info, nil
}

// BulkCreateBooksUseCase 批量创建图书
// 每条单独插入，中途失败时已插入的图书保留，请求整体失败
type BulkCreateBooksUseCase struct {
	bookService book.Service
}

// NewBulkCreateBooksUseCase 创建批量用例
func NewBulkCreateBooksUseCase(bookService book.Service) *BulkCreateBooksUseCase {
	return &BulkCreateBooksUseCase{bookService: bookService}
}

// BulkCreateBooksRequest 批量创建请求
type BulkCreateBooksRequest struct {
	Books     []BookFields
	CreatorID uint
}

// BulkCreateBooksResponse 批量创建响应
type BulkCreateBooksResponse struct {
	Books []BookInfo `json:"books"`
	Count int        `json:"count"`
}

// Execute 执行批量创建
func (uc *BulkCreateBooksUseCase) Execute(ctx context.Context, req BulkCreateBooksRequest) (*BulkCreateBooksResponse, error) {
	drafts := make([]book.Draft, len(req.Books))
	for i, f := range req.Books {
		drafts[i] = f.draft()
	}

	books, err := uc.bookService.CreateMany(ctx, drafts, req.CreatorID)
	if len(books) > 0 {
		metrics.AddCounterVec(metrics.BooksCreatedTotal, map[string]string{"mode": "bulk"}, float64(len(books)))
	}
	if err != nil {
		return nil, err
	}

	return &BulkCreateBooksResponse{Books: toBookInfos(books), Count: len(books)}, nil
}
