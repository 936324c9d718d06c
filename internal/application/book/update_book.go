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

// UpdateBookUseCase 更新图书用例
// 设计说明:
// 1. "先查后写"在同一事务中执行
// 2. 图书不存在返回ErrBookNotFound,不会新建
// 3. 事务提交后才发布book.updated事件
type UpdateBookUseCase struct {
	bookService book.Service
	tx          TxRunner
	publisher   book.EventPublisher
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, tx TxRunner, publisher book.EventPublisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		tx:          tx,
		publisher:   publisher,
	}
}

// Execute 执行更新用例
// 校验失败时result.Book为临时记录(ID为路径中的id),库中数据不变
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, in BookInput) (result book.SaveResult, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.UpdateBook")
	span.SetAttributes(attribute.Int64("book_id", int64(id)))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveBookOperation("update", start, err)
	}()

	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		var txErr error
		result, txErr = uc.bookService.UpdateBook(ctx, id, in.draft())
		return txErr
	})
	if err != nil {
		return book.SaveResult{}, err
	}

	if !result.Valid() {
		metrics.IncValidationFailure("update")
		return result, nil
	}

	logger.FromContext(ctx).Info("图书已更新", zap.Uint("book_id", id))
	uc.publisher.Publish(ctx, book.NewEvent(book.EventUpdated, result.Book))

	return result, nil
}
