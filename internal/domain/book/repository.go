package book

import (
	"context"
)

// Repository 图书仓储接口
type Repository interface {
	// Create 单条插入，成功后回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 带出创建者信息；不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// List 按作者、类型过滤分页，返回当页数据和总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 标题或作者包含query（不区分大小写），不分页
	Search(ctx context.Context, query string) ([]*Book, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Author string // 子串匹配，不区分大小写
	Genre  string
	Page   int // 从1开始
	Limit  int
}

// Offset 当前页的偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
