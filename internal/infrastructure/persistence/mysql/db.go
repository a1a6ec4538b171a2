package mysql

import (
	"fmt"
	"log/slog"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

// NewDB 连接MySQL，配置连接池，按需自动迁移
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(gormmysql.Open(cfg.Database.DSN()), cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	slog.Info("database connected", "host", cfg.Database.Host, "db", cfg.Database.DBName)

	// 生产环境应使用版本化迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}
	return db, nil
}

// Open 用给定方言打开GORM连接
// TranslateError开启后，唯一索引冲突会被翻译成gorm.ErrDuplicatedKey
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
}

// AutoMigrate 创建或补齐表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&ReviewModel{},
	)
}

// UserModel 用户表
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:30;not null;comment:用户名"`
	Email     string    `gorm:"uniqueIndex;size:254;not null;comment:邮箱（小写）"`
	Password  string    `gorm:"size:255;not null;comment:bcrypt哈希"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel 图书表
// idx_list 支撑按创建时间倒序分页
type BookModel struct {
	ID            uint       `gorm:"primaryKey"`
	Title         string     `gorm:"size:100;not null;comment:书名"`
	Author        string     `gorm:"index;size:100;not null;comment:作者"`
	Genre         string     `gorm:"index;size:50;not null;comment:类型"`
	Description   string     `gorm:"size:500;comment:简介"`
	PublishedYear *int       `gorm:"comment:出版年份"`
	CreatorID     uint       `gorm:"index;not null;comment:创建者用户ID"`
	Creator       *UserModel `gorm:"foreignKey:CreatorID"`
	CreatedAt     time.Time  `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// ReviewModel 书评表
// uk_book_reviewer 保证同一用户对同一本书最多一条书评
type ReviewModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"uniqueIndex:uk_book_reviewer,priority:1;not null;comment:图书ID"`
	ReviewerID uint       `gorm:"uniqueIndex:uk_book_reviewer,priority:2;index;not null;comment:作者用户ID"`
	Reviewer   *UserModel `gorm:"foreignKey:ReviewerID"`
	Rating     int        `gorm:"type:tinyint;not null;comment:评分1-5"`
	Comment    string     `gorm:"size:500;comment:评论"`
	CreatedAt  time.Time  `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
