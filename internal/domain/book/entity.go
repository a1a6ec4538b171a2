package book

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinPublishedYear 出版年份下限
const MinPublishedYear = 1900

// Book 图书实体（聚合根）
// CreatorID创建后不可修改
type Book struct {
	ID            uint
	Title         string
	Author        string
	Genre         string
	Description   string
	PublishedYear *int
	CreatorID     uint
	Creator       *Creator // 查询时填充，创建时为空
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Creator 图书创建者的公开信息
type Creator struct {
	ID       uint
	Username string
	Email    string
}

// Draft 待创建图书的字段
type Draft struct {
	Title         string
	Author        string
	Genre         string
	Description   string
	PublishedYear *int
}

// Normalize 去掉首尾空白
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	d.Genre = strings.TrimSpace(d.Genre)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Validate 校验规范化后的字段
// requireYear为false时（批量导入）出版年份可以缺省，但给出时仍需在范围内
func (d Draft) Validate(requireYear bool, now time.Time) error {
	if !between(d.Title, 3, 100) {
		return ErrInvalidTitle
	}
	if !between(d.Author, 3, 100) {
		return ErrInvalidAuthor
	}
	if !between(d.Genre, 3, 50) {
		return ErrInvalidGenre
	}
	if utf8.RuneCountInString(d.Description) > 500 {
		return ErrInvalidDescription
	}
	if d.PublishedYear == nil {
		if requireYear {
			return ErrPublishedYearRequired
		}
		return nil
	}
	if y := *d.PublishedYear; y < MinPublishedYear || y > now.Year() {
		return ErrInvalidPublishedYear
	}
	return nil
}

// NewBook 由草稿创建图书
func NewBook(d Draft, creatorID uint) *Book {
	d = d.Normalize()
	now := time.Now()
	return &Book{
		Title:         d.Title,
		Author:        d.Author,
		Genre:         d.Genre,
		Description:   d.Description,
		PublishedYear: d.PublishedYear,
		CreatorID:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func between(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
