package book

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/gormdb"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	events []book.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e book.Event) {
	p.events = append(p.events, e)
}

type fixture struct {
	repo      book.Repository
	publisher *recordingPublisher
	list      *ListBooksUseCase
	get       *GetBookUseCase
	create    *CreateBookUseCase
	update    *UpdateBookUseCase
	delete    *DeleteBookUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "books.db"),
			MaxOpenConns: 1,
		},
	}
	db, cleanup, err := gormdb.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	repo := gormdb.NewBookRepository(db)
	svc := book.NewService(repo)
	tx := gormdb.NewTxManager(db)
	pub := &recordingPublisher{}

	return &fixture{
		repo:      repo,
		publisher: pub,
		list:      NewListBooksUseCase(svc),
		get:       NewGetBookUseCase(svc),
		create:    NewCreateBookUseCase(svc, pub),
		update:    NewUpdateBookUseCase(svc, tx, pub),
		delete:    NewDeleteBookUseCase(svc, tx, pub),
	}
}

func (f *fixture) seed(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, f.repo.Create(context.Background(), &book.Book{
			Title:  fmt.Sprintf("Book %02d", i),
			Author: "Author",
		}))
	}
}

func ids(books []*book.Book) []uint {
	out := make([]uint, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestListBooksUseCase_Pagination(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 12)
	ctx := context.Background()

	t.Run("第2页", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: "2"})
		require.NoError(t, err)

		assert.Equal(t, []uint{6, 7, 8, 9, 10}, ids(resp.Books))
		assert.Equal(t, int64(12), resp.Count)
		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, 2, resp.Page)
		require.NotNil(t, resp.PreviousPage)
		assert.Equal(t, 1, resp.PreviousPage.Page)
		require.NotNil(t, resp.NextPage)
		assert.Equal(t, 3, resp.NextPage.Page)
		assert.Equal(t, []int{1, 2, 3}, resp.Pages())
	})

	t.Run("最后一页没有下一页", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: "3"})
		require.NoError(t, err)
		assert.Equal(t, []uint{11, 12}, ids(resp.Books))
		assert.Nil(t, resp.NextPage)
		assert.NotNil(t, resp.PreviousPage)
	})

	t.Run("非法页码视为第1页", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "0", "-3", "2x"} {
			resp, err := f.list.Execute(ctx, ListBooksRequest{Page: raw})
			require.NoError(t, err)
			assert.Equal(t, 1, resp.Page, "page=%q", raw)
			assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(resp.Books))
			assert.Nil(t, resp.PreviousPage)
		}
	})

	t.Run("超出范围返回空列表", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: "9"})
		require.NoError(t, err)
		assert.Empty(t, resp.Books)
		assert.Equal(t, int64(12), resp.Count)
		assert.Nil(t, resp.NextPage)
		require.NotNil(t, resp.PreviousPage)
		assert.Equal(t, 8, resp.PreviousPage.Page)
	})

	t.Run("极大页码不溢出", func(t *testing.T) {
		resp, err := f.list.Execute(ctx, ListBooksRequest{Page: "2305843009213693953"})
		require.NoError(t, err)
		assert.Empty(t, resp.Books)
		assert.Equal(t, 2305843009213693953, resp.Page)
		assert.Equal(t, int64(12), resp.Count)
		assert.Nil(t, resp.NextPage)
		require.NotNil(t, resp.PreviousPage)
		assert.Equal(t, 2305843009213693952, resp.PreviousPage.Page)
	})
}

func TestListBooksUseCase_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	year := 1951
	require.NoError(t, f.repo.Create(ctx, &book.Book{Title: "Foundation", Author: "Isaac Asimov", Genre: "Sci-Fi", Year: &year}))
	require.NoError(t, f.repo.Create(ctx, &book.Book{Title: "Emma", Author: "Jane Austen", Genre: "Romance"}))

	resp, err := f.list.Execute(ctx, ListBooksRequest{Search: "195"})
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Foundation", resp.Books[0].Title)
	assert.Equal(t, "195", resp.Search)
	assert.Equal(t, 1, resp.TotalPages)

	resp, err = f.list.Execute(ctx, ListBooksRequest{Search: "nothing-matches"})
	require.NoError(t, err)
	assert.Empty(t, resp.Books)
	assert.Zero(t, resp.Count)
	assert.Zero(t, resp.TotalPages)
	assert.Nil(t, resp.NextPage)
	assert.Nil(t, resp.PreviousPage)
}

func TestCreateBookUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("标题为空不写库", func(t *testing.T) {
		result, err := f.create.Execute(ctx, BookInput{Title: "", Author: "Someone", Genre: "Drama", Year: "1999"})
		require.NoError(t, err)
		assert.False(t, result.Valid())
		assert.Equal(t, []string{`"Title" is required`}, result.FieldErrors.Messages())
		assert.Zero(t, result.Book.ID)
		assert.Equal(t, "Someone", result.Book.Author)

		resp, err := f.list.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)
		assert.Zero(t, resp.Count)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("创建成功并发布事件", func(t *testing.T) {
		result, err := f.create.Execute(ctx, BookInput{Title: "Dune", Author: "Frank Herbert", Year: "1965"})
		require.NoError(t, err)
		require.True(t, result.Valid())
		assert.NotZero(t, result.Book.ID)

		got, err := f.get.Execute(ctx, result.Book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, book.EventCreated, f.publisher.events[0].Type)
		assert.Equal(t, result.Book.ID, f.publisher.events[0].BookID)
	})
}

func TestUpdateBookUseCase(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 2)
	ctx := context.Background()

	t.Run("不存在的图书", func(t *testing.T) {
		_, err := f.update.Execute(ctx, 99, BookInput{Title: "X", Author: "Y"})
		assert.ErrorIs(t, err, book.ErrBookNotFound)

		resp, err := f.list.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Count)
	})

	t.Run("校验失败不修改", func(t *testing.T) {
		result, err := f.update.Execute(ctx, 1, BookInput{Title: "Changed", Author: "  "})
		require.NoError(t, err)
		assert.False(t, result.Valid())
		assert.True(t, result.FieldErrors.Has("Author"))
		assert.Equal(t, uint(1), result.Book.ID)
		assert.Equal(t, "Changed", result.Book.Title)

		got, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Book 01", got.Title)
	})

	t.Run("整体覆盖", func(t *testing.T) {
		result, err := f.update.Execute(ctx, 1, BookInput{Title: "New Title", Author: "New Author", Genre: "Poetry", Year: "2020"})
		require.NoError(t, err)
		require.True(t, result.Valid())

		got, err := f.get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "New Title", got.Title)
		assert.Equal(t, "New Author", got.Author)
		assert.Equal(t, "Poetry", got.Genre)
		require.NotNil(t, got.Year)
		assert.Equal(t, 2020, *got.Year)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, book.EventUpdated, f.publisher.events[0].Type)
	})
}

func TestDeleteBookUseCase(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 3)
	ctx := context.Background()

	err := f.delete.Execute(ctx, 99)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, f.publisher.events)

	require.NoError(t, f.delete.Execute(ctx, 2))

	_, err = f.get.Execute(ctx, 2)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	resp, err := f.list.Execute(ctx, ListBooksRequest{})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids(resp.Books))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, book.EventDeleted, f.publisher.events[0].Type)
	assert.Equal(t, "Book 02", f.publisher.events[0].Title)
}
