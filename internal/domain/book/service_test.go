package book

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository 内存版仓储(仅测试使用)
type memoryRepository struct {
	nextID uint
	books  map[uint]*Book
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, books: make(map[uint]*Book)}
}

func (r *memoryRepository) Create(_ context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepository) Update(_ context.Context, b *Book) error {
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memoryRepository) Search(_ context.Context, p SearchParams) ([]*Book, int64, error) {
	term := strings.ToLower(p.Term)
	var matched []*Book
	for _, b := range r.books {
		fields := []string{b.Title, b.Author, b.Genre, b.YearString()}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				matched = append(matched, b)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if p.Offset >= len(matched) {
		return []*Book{}, total, nil
	}
	end := p.Offset + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[p.Offset:end], total, nil
}

func TestService_CreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("校验通过写库", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := NewService(repo)

		res, err := svc.CreateBook(ctx, Draft{Title: "Dune", Author: "Frank Herbert", Year: "1965"})
		require.NoError(t, err)
		require.True(t, res.Valid())
		assert.Equal(t, uint(1), res.Book.ID)
		assert.Len(t, repo.books, 1)
	})

	t.Run("标题为空不写库", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := NewService(repo)

		res, err := svc.CreateBook(ctx, Draft{Title: "", Author: "Smith"})
		require.NoError(t, err)
		assert.False(t, res.Valid())
		assert.True(t, res.FieldErrors.Has("Title"))
		assert.Equal(t, "Smith", res.Book.Author)
		assert.Empty(t, repo.books)
	})
}

func TestService_UpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("不存在的ID返回ErrBookNotFound", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := NewService(repo)

		_, err := svc.UpdateBook(ctx, 42, Draft{Title: "T", Author: "A"})
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Empty(t, repo.books)
	})

	t.Run("校验失败保留路径ID且不修改", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := NewService(repo)
		created, err := svc.CreateBook(ctx, Draft{Title: "Dune", Author: "Frank Herbert"})
		require.NoError(t, err)

		res, err := svc.UpdateBook(ctx, created.Book.ID, Draft{Title: "New", Author: " "})
		require.NoError(t, err)
		assert.False(t, res.Valid())
		assert.Equal(t, created.Book.ID, res.Book.ID)
		assert.Equal(t, "New", res.Book.Title)

		stored, err := repo.FindByID(ctx, created.Book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", stored.Title)
	})

	t.Run("整体覆盖可编辑字段", func(t *testing.T) {
		repo := newMemoryRepository()
		svc := NewService(repo)
		created, err := svc.CreateBook(ctx, Draft{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Year: "1965"})
		require.NoError(t, err)

		res, err := svc.UpdateBook(ctx, created.Book.ID, Draft{Title: "Dune Messiah", Author: "Frank Herbert"})
		require.NoError(t, err)
		require.True(t, res.Valid())

		stored, err := repo.FindByID(ctx, created.Book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", stored.Title)
		assert.Equal(t, "", stored.Genre)
		assert.Nil(t, stored.Year)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := NewService(repo)

	created, err := svc.CreateBook(ctx, Draft{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	deleted, err := svc.DeleteBook(ctx, created.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)

	_, err = svc.GetBook(ctx, created.Book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = svc.DeleteBook(ctx, created.Book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
