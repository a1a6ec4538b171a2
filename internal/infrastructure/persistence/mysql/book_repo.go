package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/book"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// newestFirst 同一时间戳按ID倒序，保证分页稳定
const newestFirst = "created_at DESC, id DESC"

// bookRepository 图书仓储的GORM实现
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		CreatorID:     b.CreatorID,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.ErrDatabaseError.WithCause(err)
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).Preload("Creator", publicUserColumns).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntity(&model), nil
}

// List 作者、类型都是不区分大小写的子串匹配
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	filtered := func() *gorm.DB {
		q := dbFromContext(ctx, r.db).Model(&BookModel{})
		if params.Author != "" {
			q = q.Where("LOWER(author) LIKE ? ESCAPE '!'", likePattern(params.Author))
		}
		if params.Genre != "" {
			q = q.Where("LOWER(genre) LIKE ? ESCAPE '!'", likePattern(params.Genre))
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	var models []BookModel
	err := filtered().
		Preload("Creator", publicUserColumns).
		Order(newestFirst).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithCause(err)
	}

	return toBookEntities(models), total, nil
}

// Search 标题或作者包含query
func (r *bookRepository) Search(ctx context.Context, query string) ([]*book.Book, error) {
	pattern := likePattern(query)

	var models []BookModel
	err := dbFromContext(ctx, r.db).
		Preload("Creator", publicUserColumns).
		Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!'", pattern, pattern).
		Order(newestFirst).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return toBookEntities(models), nil
}

// publicUserColumns 关联查询用户时不带出密码哈希
func publicUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "email")
}

func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		Genre:         model.Genre,
		Description:   model.Description,
		PublishedYear: model.PublishedYear,
		CreatorID:     model.CreatorID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.Creator != nil {
		b.Creator = &book.Creator{
			ID:       model.Creator.ID,
			Username: model.Creator.Username,
			Email:    model.Creator.Email,
		}
	}
	return b
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, 0, len(models))
	for i := range models {
		books = append(books, toBookEntity(&models[i]))
	}
	return books
}
