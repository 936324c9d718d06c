package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例(物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
	tx          TxRunner
	publisher   book.EventPublisher
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, tx TxRunner, publisher book.EventPublisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		tx:          tx,
		publisher:   publisher,
	}
}

// Execute 执行删除用例,不存在时返回book.ErrBookNotFound且不做任何修改
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.DeleteBook")
	span.SetAttributes(attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveBookOperation("delete", start, err)
	}()

	var deleted *book.Book
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		var txErr error
		deleted, txErr = uc.bookService.DeleteBook(ctx, id)
		return txErr
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("图书已删除", zap.Uint("book_id", id))
	uc.publisher.Publish(ctx, book.NewEvent(book.EventDeleted, deleted))

	return nil
}
