package book

import (
	"time"

	"github.com/xiebiao/bookreview/internal/domain/book"
)

// BookInfo 图书响应
type BookInfo struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Genre         string       `json:"genre"`
	Description   string       `json:"description"`
	PublishedYear *int         `json:"publishedYear"`
	CreatorID     uint         `json:"creatorId"`
	Creator       *CreatorInfo `json:"creator,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreatorInfo 创建者公开信息
type CreatorInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BookFields 创建图书的字段
type BookFields struct {
	Title         string
	Author        string
	Genre         string
	Description   string
	PublishedYear *int
}

func (f BookFields) draft() book.Draft {
	return book.Draft{
		Title:         f.Title,
		Author:        f.Author,
		Genre:         f.Genre,
		Description:   f.Description,
		PublishedYear: f.PublishedYear,
	}
}

func toBookInfo(b *book.Book) BookInfo {
	info := BookInfo{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		CreatorID:     b.CreatorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.Creator != nil {
		info.Creator = &CreatorInfo{
			ID:       b.Creator.ID,
			Username: b.Creator.Username,
			Email:    b.Creator.Email,
		}
	}
	return info
}

func toBookInfos(books []*book.Book) []BookInfo {
	infos := make([]BookInfo, 0, len(books))
	for _, b := range books {
		infos = append(infos, toBookInfo(b))
	}
	return infos
}

// totalPages 向上取整
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
