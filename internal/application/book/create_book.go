package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 校验失败返回临时记录和字段错误,不写库
// 2. 创建成功后发布book.created事件(失败不影响结果)
type CreateBookUseCase struct {
	bookService book.Service
	publisher   book.EventPublisher
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, publisher book.EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, in BookInput) (result book.SaveResult, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.CreateBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveBookOperation("create", start, err)
	}()

	result, err = uc.bookService.CreateBook(ctx, in.draft())
	if err != nil {
		return book.SaveResult{}, err
	}

	if !result.Valid() {
		metrics.IncValidationFailure("create")
		return result, nil
	}

	logger.FromContext(ctx).Info("图书已创建",
		zap.Uint("book_id", result.Book.ID),
		zap.String("title", result.Book.Title),
	)
	uc.publisher.Publish(ctx, book.NewEvent(book.EventCreated, result.Book))

	return result, nil
}
