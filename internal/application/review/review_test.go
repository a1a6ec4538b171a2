package review

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/mysql"
)

// recordingPublisher 记录发布的事件，err非空时模拟MQ故障
type recordingPublisher struct {
	mu     sync.Mutex
	events []ReviewEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	event := message.(ReviewEvent)
	if event.Type != routingKey {
		return errors.New("routing key mismatch")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type fixture struct {
	submit    *SubmitReviewUseCase
	update    *UpdateReviewUseCase
	delete    *DeleteReviewUseCase
	publisher *recordingPublisher
	books     book.Service
	alice     *user.User
	bob       *user.User
	book      *book.Book
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := mysql.Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	users := user.NewService(mysql.NewUserRepository(db), user.WithHashCost(bcrypt.MinCost))
	books := book.NewService(mysql.NewBookRepository(db))
	reviews := review.NewService(mysql.NewReviewRepository(db), mysql.NewTxManager(db))
	publisher := &recordingPublisher{}

	alice, err := users.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
	bob, err := users.Register(ctx, "bob", "bob@example.com", "password123")
	require.NoError(t, err)
	year := 1954
	b, err := books.Create(ctx, book.Draft{Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Genre: "Fantasy", PublishedYear: &year}, alice.ID)
	require.NoError(t, err)

	return &fixture{
		submit:    NewSubmitReviewUseCase(books, users, reviews, publisher),
		update:    NewUpdateReviewUseCase(books, reviews, publisher),
		delete:    NewDeleteReviewUseCase(books, reviews, publisher),
		publisher: publisher,
		books:     books,
		alice:     alice,
		bob:       bob,
		book:      b,
	}
}

func TestSubmitReviewUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("提交成功并发布事件", func(t *testing.T) {
		f := newFixture(t)
		info, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 5, Comment: "  classic  "})
		require.NoError(t, err)

		assert.NotZero(t, info.ID)
		assert.Equal(t, f.book.ID, info.BookID)
		assert.Equal(t, f.bob.ID, info.ReviewerID)
		assert.Equal(t, "classic", info.Comment)
		assert.Equal(t, []string{EventReviewSubmitted}, f.publisher.types())
		assert.Equal(t, info.ID, f.publisher.events[0].ReviewID)
		assert.Equal(t, 5, f.publisher.events[0].Rating)
	})

	t.Run("重复提交", func(t *testing.T) {
		f := newFixture(t)
		req := SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 4}
		_, err := f.submit.Execute(ctx, req)
		require.NoError(t, err)

		_, err = f.submit.Execute(ctx, req)
		assert.ErrorIs(t, err, review.ErrReviewDuplicate)
		assert.Len(t, f.publisher.types(), 1)
	})

	t.Run("图书不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: 999, ReviewerID: f.bob.ID, Rating: 4})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("用户不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: 999, Rating: 4})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("评分越界", func(t *testing.T) {
		f := newFixture(t)
		for _, rating := range []int{0, 6} {
			_, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: rating})
			assert.ErrorIs(t, err, review.ErrInvalidRating)
		}
	})

	t.Run("MQ故障不影响提交", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.err = errors.New("broker down")
		info, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 3})
		require.NoError(t, err)
		assert.NotZero(t, info.ID)
	})
}

func TestUpdateReviewUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	submitted, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	t.Run("作者本人修改，评论缺省即清除", func(t *testing.T) {
		info, err := f.update.Execute(ctx, UpdateReviewRequest{BookID: f.book.ID, ReviewID: submitted.ID, ReviewerID: f.bob.ID, Rating: 4})
		require.NoError(t, err)
		assert.Equal(t, 4, info.Rating)
		assert.Empty(t, info.Comment)
		assert.Contains(t, f.publisher.types(), EventReviewUpdated)
	})

	t.Run("非作者修改返回不存在", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateReviewRequest{BookID: f.book.ID, ReviewID: submitted.ID, ReviewerID: f.alice.ID, Rating: 1})
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("书评不属于该图书", func(t *testing.T) {
		year := 1937
		other, err := f.books.Create(ctx, book.Draft{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "Fantasy", PublishedYear: &year}, f.alice.ID)
		require.NoError(t, err)

		_, err = f.update.Execute(ctx, UpdateReviewRequest{BookID: other.ID, ReviewID: submitted.ID, ReviewerID: f.bob.ID, Rating: 1})
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := f.update.Execute(ctx, UpdateReviewRequest{BookID: 999, ReviewID: submitted.ID, ReviewerID: f.bob.ID, Rating: 3})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestDeleteReviewUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	submitted, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 5})
	require.NoError(t, err)

	t.Run("非作者删除返回不存在", func(t *testing.T) {
		err := f.delete.Execute(ctx, DeleteReviewRequest{BookID: f.book.ID, ReviewID: submitted.ID, ReviewerID: f.alice.ID})
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("作者本人删除", func(t *testing.T) {
		require.NoError(t, f.delete.Execute(ctx, DeleteReviewRequest{BookID: f.book.ID, ReviewID: submitted.ID, ReviewerID: f.bob.ID}))
		assert.Equal(t, []string{EventReviewSubmitted, EventReviewDeleted}, f.publisher.types())
	})

	t.Run("重复删除", func(t *testing.T) {
		err := f.delete.Execute(ctx, DeleteReviewRequest{BookID: f.book.ID, ReviewID: submitted.ID, ReviewerID: f.bob.ID})
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("删除后可以重新提交", func(t *testing.T) {
		_, err := f.submit.Execute(ctx, SubmitReviewRequest{BookID: f.book.ID, ReviewerID: f.bob.ID, Rating: 3})
		assert.NoError(t, err)
	})
}

func TestSubmitReviewUseCase_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	f := newFixture(t)
	_, err := f.submit.Execute(context.Background(), SubmitReviewRequest{BookID: 999, ReviewerID: f.bob.ID, Rating: 4})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "SubmitReview", spans[0].Name())
	assert.Equal(t, "Error", spans[0].Status().Code.String())
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "success", resultLabel(nil))
	assert.Equal(t, "duplicate", resultLabel(review.ErrReviewDuplicate.WithCause(errors.New("1062"))))
	assert.Equal(t, "not_found", resultLabel(review.ErrReviewNotFound))
	assert.Equal(t, "invalid", resultLabel(review.ErrInvalidRating))
	assert.Equal(t, "error", resultLabel(errors.New("boom")))
}
