package mysql

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 内存SQLite，单连接保证所有查询看到同一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *UserModel {
	t.Helper()
	u := &UserModel{Username: name, Email: fmt.Sprintf("%s@example.com", name), Password: "hash"}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func seedBook(t *testing.T, db *gorm.DB, creatorID uint, title, author, genre string) *BookModel {
	t.Helper()
	b := &BookModel{Title: title, Author: author, Genre: genre, CreatorID: creatorID}
	require.NoError(t, db.Create(b).Error)
	return b
}
