package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := user.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	t.Run("用户名重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("alice", "other@example.com", "hash"))
		assert.ErrorIs(t, err, user.ErrUserDuplicate)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("bob", "alice@example.com", "hash"))
		assert.ErrorIs(t, err, user.ErrUserDuplicate)
	})

	t.Run("按ID和邮箱查询", func(t *testing.T) {
		byID, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.Password)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, user.ErrUserNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

// newMockDB MySQL方言 + sqlmock，用于验证MySQL特有的错误翻译
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), false)
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_MySQLErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("1062翻译为用户重复", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `users`").
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.idx_users_username'"})
		mock.ExpectRollback()

		err := NewUserRepository(db).Create(ctx, user.NewUser("alice", "alice@example.com", "hash"))
		assert.ErrorIs(t, err, user.ErrUserDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("其他数据库错误翻译为内部错误", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errors.New("connection reset"))

		_, err := NewUserRepository(db).FindByID(ctx, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.GetAppError(err).Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(&mysqldriver.MySQLError{Number: 1062}))
	assert.True(t, isDuplicateError(errors.New("UNIQUE constraint failed: reviews.book_id, reviews.reviewer_id")))
	assert.False(t, isDuplicateError(&mysqldriver.MySQLError{Number: 1213}))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%tolkien%", likePattern("Tolkien"))
	assert.Equal(t, "%100!%%", likePattern("100%"))
	assert.Equal(t, "%a!_b%", likePattern("a_b"))
	assert.Equal(t, "%wow!!%", likePattern("wow!"))
}
