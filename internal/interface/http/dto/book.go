package dto

import (
	"encoding/json"
)

// CreateBookRequest 创建图书请求，出版年份必填
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required,notblank,min=3,max=100" example:"The Hobbit"`
	Author        string `json:"author" binding:"required,notblank,min=3,max=100" example:"J.R.R. Tolkien"`
	Genre         string `json:"genre" binding:"required,notblank,min=3,max=50" example:"Fantasy"`
	Description   string `json:"description" binding:"max=500" example:"There and back again"`
	PublishedYear *int   `json:"publishedYear" binding:"required,min=1900,notfuture" example:"1937"`
}

// BulkBookItem 批量导入的单条图书，出版年份可缺省
type BulkBookItem struct {
	Title         string `json:"title" binding:"required,notblank,min=3,max=100"`
	Author        string `json:"author" binding:"required,notblank,min=3,max=100"`
	Genre         string `json:"genre" binding:"required,notblank,min=3,max=50"`
	Description   string `json:"description" binding:"max=500"`
	PublishedYear *int   `json:"publishedYear" binding:"omitempty,min=1900,notfuture"`
}

// BulkCreateBooksRequest books保留原始JSON，由handler判断是否为非空数组
type BulkCreateBooksRequest struct {
	Books json.RawMessage `json:"books" swaggertype:"array,object"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Page   *int   `form:"page" binding:"omitempty,min=1"`
	Limit  *int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

// BookDetailQuery 图书详情中书评的分页参数
type BookDetailQuery struct {
	Page  *int `form:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SearchBooksQuery 搜索参数
type SearchBooksQuery struct {
	Query string `form:"query"`
}

// BookResponse 图书（swagger文档用）
type BookResponse struct {
	ID            uint            `json:"id" example:"1"`
	Title         string          `json:"title" example:"The Hobbit"`
	Author        string          `json:"author" example:"J.R.R. Tolkien"`
	Genre         string          `json:"genre" example:"Fantasy"`
	Description   string          `json:"description"`
	PublishedYear *int            `json:"publishedYear" example:"1937"`
	CreatorID     uint            `json:"creatorId" example:"1"`
	Creator       *PublicUserInfo `json:"creator,omitempty"`
	CreatedAt     string          `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt     string          `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// PublicUserInfo 创建者或书评作者
type PublicUserInfo struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// PaginationResponse 图书列表分页块
type PaginationResponse struct {
	TotalBooks  int64 `json:"totalBooks" example:"25"`
	TotalPages  int   `json:"totalPages" example:"3"`
	CurrentPage int   `json:"currentPage" example:"1"`
	Limit       int   `json:"limit" example:"10"`
}

// BookCreatedResponse 创建图书响应
type BookCreatedResponse struct {
	Message string       `json:"message" example:"Book created successfully"`
	Book    BookResponse `json:"book"`
}

// BooksCreatedResponse 批量创建响应
type BooksCreatedResponse struct {
	Message string         `json:"message" example:"Books created successfully"`
	Books   []BookResponse `json:"books"`
	Count   int            `json:"count" example:"2"`
}

// BookListResponse 图书列表响应
type BookListResponse struct {
	Message    string             `json:"message" example:"Books retrieved successfully"`
	Books      []BookResponse     `json:"books"`
	Pagination PaginationResponse `json:"pagination"`
}

// BookSearchResponse 搜索响应
type BookSearchResponse struct {
	Message string         `json:"message" example:"Books retrieved successfully"`
	Books   []BookResponse `json:"books"`
}

// BookDetailResponse 图书详情响应
type BookDetailResponse struct {
	Message       string             `json:"message" example:"Book fetched successfully"`
	Book          BookResponse       `json:"book"`
	AverageRating string             `json:"averageRating" example:"4.0"`
	Reviews       ReviewPageResponse `json:"reviews"`
}
