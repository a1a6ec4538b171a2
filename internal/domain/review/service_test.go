package review

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo 内存仓储，模拟 (book_id, reviewer_id) 唯一索引
type fakeRepo struct {
	mu      sync.Mutex
	nextID  uint
	reviews map[uint]*Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: make(map[uint]*Review)}
}

func (r *fakeRepo) Create(_ context.Context, rv *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.BookID == rv.BookID && existing.ReviewerID == rv.ReviewerID {
			return ErrReviewDuplicate
		}
	}
	r.nextID++
	rv.ID = r.nextID
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeRepo) FindOwnedForUpdate(_ context.Context, reviewID, bookID, reviewerID uint) (*Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[reviewID]
	if !ok || rv.BookID != bookID || rv.ReviewerID != reviewerID {
		return nil, ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, rv *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
	return nil
}

func (r *fakeRepo) ListByBook(_ context.Context, bookID uint, page, limit int) ([]*Review, int64, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Summarize(_ context.Context, bookID uint) (RatingSummary, error) {
	var s RatingSummary
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			s.Sum += int64(rv.Rating)
			s.Count++
		}
	}
	return s, nil
}

// inlineTx 直接执行fn
type inlineTx struct{ calls int }

func (t *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("同一用户同一本书只能评一次", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &inlineTx{})
		r, err := svc.Submit(ctx, 1, 2, 5, "  great  ")
		require.NoError(t, err)
		assert.Equal(t, "great", r.Comment)

		_, err = svc.Submit(ctx, 1, 2, 3, "again")
		assert.ErrorIs(t, err, ErrReviewDuplicate)

		// 其他用户或其他图书不受影响
		_, err = svc.Submit(ctx, 1, 3, 4, "")
		assert.NoError(t, err)
		_, err = svc.Submit(ctx, 2, 2, 4, "")
		assert.NoError(t, err)
	})

	t.Run("评分越界", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &inlineTx{})
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Submit(ctx, 1, 1, rating, "")
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})

	t.Run("评论过长", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &inlineTx{})
		_, err := svc.Submit(ctx, 1, 1, 3, strings.Repeat("c", 501))
		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("并发重复提交只有一个成功", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &inlineTx{})

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Submit(ctx, 9, 9, 4, "")
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var ok, dup int
		for err := range errs {
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, ErrReviewDuplicate) {
				dup++
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 9, dup)
	})
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	tx := &inlineTx{}
	svc := NewService(repo, tx)

	r, err := svc.Submit(ctx, 1, 2, 3, "ok")
	require.NoError(t, err)

	t.Run("非作者修改返回NotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, 1, r.ID, 99, 5, "")
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("图书不匹配返回NotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, 2, r.ID, 2, 5, "")
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("修改覆盖评分并清空评论", func(t *testing.T) {
		updated, err := svc.Update(ctx, 1, r.ID, 2, 5, "")
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Empty(t, updated.Comment)
		assert.Equal(t, 5, repo.reviews[r.ID].Rating)
	})

	t.Run("非作者删除返回NotFound", func(t *testing.T) {
		_, err := svc.Delete(ctx, 1, r.ID, 99)
		assert.ErrorIs(t, err, ErrReviewNotFound)
		assert.Contains(t, repo.reviews, r.ID)
	})

	t.Run("删除后可重新提交", func(t *testing.T) {
		deleted, err := svc.Delete(ctx, 1, r.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, r.ID, deleted.ID)
		assert.NotContains(t, repo.reviews, r.ID)

		_, err = svc.Submit(ctx, 1, 2, 4, "")
		assert.NoError(t, err)
	})

	assert.Positive(t, tx.calls)
}

func TestService_AverageRating(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), &inlineTx{})

	avg, err := svc.AverageRating(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.0", FormatRating(avg))

	for i, rating := range []int{3, 4, 5} {
		_, err := svc.Submit(ctx, 1, uint(i+1), rating, "")
		require.NoError(t, err)
	}
	avg, err = svc.AverageRating(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "4.0", FormatRating(avg))
}

func TestRatingSummary_Average(t *testing.T) {
	tests := []struct {
		name  string
		sum   int64
		count int64
		want  string
	}{
		{"无评分", 0, 0, "0.0"},
		{"整数", 12, 3, "4.0"},
		{"舍去", 13, 3, "4.3"},  // 4.333
		{"进位", 14, 3, "4.7"},  // 4.666
		{"恰好一半进位", 87, 20, "4.4"}, // 4.35
		{"一半进位", 9, 2, "4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RatingSummary{Sum: tt.sum, Count: tt.count}.Average()
			assert.Equal(t, tt.want, FormatRating(got))
		})
	}
}
