package book

import (
	"context"
	"strings"
	"time"
)

// 分页默认值
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Service 图书领域服务
type Service interface {
	// Create 创建单本图书，出版年份必填
	Create(ctx context.Context, draft Draft, creatorID uint) (*Book, error)

	// CreateMany 批量创建
	// 先校验全部条目，再逐条插入；中途失败时已插入的条目保留
	CreateMany(ctx context.Context, drafts []Draft, creatorID uint) ([]*Book, error)

	GetByID(ctx context.Context, id uint) (*Book, error)

	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 空白查询返回ErrSearchQueryRequired，无结果返回ErrNoBooksFound
	Search(ctx context.Context, query string) ([]*Book, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, draft Draft, creatorID uint) (*Book, error) {
	draft = draft.Normalize()
	if err := draft.Validate(true, s.now()); err != nil {
		return nil, err
	}

	b := NewBook(draft, creatorID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) CreateMany(ctx context.Context, drafts []Draft, creatorID uint) ([]*Book, error) {
	if len(drafts) == 0 {
		return nil, ErrNoBooksProvided
	}

	now := s.now()
	normalized := make([]Draft, len(drafts))
	for i, d := range drafts {
		normalized[i] = d.Normalize()
		if err := normalized[i].Validate(false, now); err != nil {
			return nil, err
		}
	}

	books := make([]*Book, 0, len(normalized))
	for _, d := range normalized {
		b := NewBook(d, creatorID)
		if err := s.repo.Create(ctx, b); err != nil {
			return books, err
		}
		books = append(books, b)
	}
	return books, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page == 0 {
		params.Page = DefaultPage
	}
	if params.Limit == 0 {
		params.Limit = DefaultLimit
	}
	if params.Page < 1 || params.Limit < 1 || params.Limit > MaxLimit {
		return nil, 0, ErrInvalidPagination
	}
	params.Author = strings.TrimSpace(params.Author)
	params.Genre = strings.TrimSpace(params.Genre)

	return s.repo.List(ctx, params)
}

func (s *service) Search(ctx context.Context, query string) ([]*Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	books, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooksFound
	}
	return books, nil
}
