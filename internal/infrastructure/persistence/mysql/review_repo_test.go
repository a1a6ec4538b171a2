package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/review"
)

func TestReviewRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	b := seedBook(t, db, alice.ID, "The Hobbit", "J.R.R. Tolkien", "Fantasy")
	repo := NewReviewRepository(db)

	rv := review.NewReview(b.ID, alice.ID, 5, "great")
	require.NoError(t, repo.Create(ctx, rv))
	assert.NotZero(t, rv.ID)

	err := repo.Create(ctx, review.NewReview(b.ID, alice.ID, 1, "again"))
	assert.ErrorIs(t, err, review.ErrReviewDuplicate)
}

func TestReviewRepository_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	b := seedBook(t, db, alice.ID, "The Hobbit", "J.R.R. Tolkien", "Fantasy")
	repo := NewReviewRepository(db)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, review.NewReview(b.ID, alice.ID, 4, ""))
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, review.ErrReviewDuplicate)
	}
	assert.Equal(t, 1, ok)

	var count int64
	require.NoError(t, db.Model(&ReviewModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReviewRepository_OwnedUpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	b := seedBook(t, db, alice.ID, "The Hobbit", "J.R.R. Tolkien", "Fantasy")
	other := seedBook(t, db, alice.ID, "Dune", "Frank Herbert", "Science Fiction")
	repo := NewReviewRepository(db)
	tx := NewTxManager(db)

	rv := review.NewReview(b.ID, alice.ID, 3, "fine")
	require.NoError(t, repo.Create(ctx, rv))

	t.Run("非作者或图书不匹配", func(t *testing.T) {
		_, err := repo.FindOwnedForUpdate(ctx, rv.ID, b.ID, bob.ID)
		assert.ErrorIs(t, err, review.ErrReviewNotFound)

		_, err = repo.FindOwnedForUpdate(ctx, rv.ID, other.ID, alice.ID)
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("事务内修改，空评论会覆盖", func(t *testing.T) {
		err := tx.WithTransaction(ctx, func(ctx context.Context) error {
			found, err := repo.FindOwnedForUpdate(ctx, rv.ID, b.ID, alice.ID)
			if err != nil {
				return err
			}
			found.Revise(5, "")
			return repo.Update(ctx, found)
		})
		require.NoError(t, err)

		var m ReviewModel
		require.NoError(t, db.First(&m, rv.ID).Error)
		assert.Equal(t, 5, m.Rating)
		assert.Empty(t, m.Comment)
	})

	t.Run("事务回滚", func(t *testing.T) {
		errAbort := errors.New("abort")
		err := tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := repo.Delete(ctx, rv.ID); err != nil {
				return err
			}
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)

		_, err = repo.FindOwnedForUpdate(ctx, rv.ID, b.ID, alice.ID)
		assert.NoError(t, err)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, rv.ID))
		assert.ErrorIs(t, repo.Delete(ctx, rv.ID), review.ErrReviewNotFound)
	})
}

func TestReviewRepository_ListAndSummarize(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	owner := seedUser(t, db, "owner")
	b := seedBook(t, db, owner.ID, "The Hobbit", "J.R.R. Tolkien", "Fantasy")

	empty, err := repo.Summarize(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, review.RatingSummary{}, empty)

	for i, rating := range []int{3, 4, 5} {
		u := seedUser(t, db, []string{"ann", "ben", "cat"}[i])
		require.NoError(t, repo.Create(ctx, review.NewReview(b.ID, u.ID, rating, "")))
	}

	summary, err := repo.Summarize(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, review.RatingSummary{Sum: 12, Count: 3}, summary)
	assert.Equal(t, 4.0, summary.Average())

	page1, total, err := repo.ListByBook(ctx, b.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	require.NotNil(t, page1[0].Reviewer)
	assert.Equal(t, "cat", page1[0].Reviewer.Username)

	page2, _, err := repo.ListByBook(ctx, b.ID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestReviewRepository_MySQLDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `reviews`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'reviews.uk_book_reviewer'"})
	mock.ExpectRollback()

	err := NewReviewRepository(db).Create(context.Background(), review.NewReview(1, 2, 4, ""))
	assert.ErrorIs(t, err, review.ErrReviewDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
