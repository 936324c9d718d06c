package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// GetBookUseCase 查询单本图书(详情页、编辑页、删除确认页共用)
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 不存在时返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (b *book.Book, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.GetBook")
	span.SetAttributes(attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveBookOperation("get", start, err)
	}()

	return uc.bookService.GetBook(ctx, id)
}
