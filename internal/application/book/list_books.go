package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// PageSize 列表每页固定5条
const PageSize = 5

// ListBooksUseCase 图书列表查询用例(搜索 + 分页)
// 设计说明:
// 1. 页码参数原样传入,由用例统一归一化(缺省/非数字/<=0 → 1)
// 2. 结果直接返回给调用方,包含当页记录和分页信息
// 3. 页码不设上限,超出最后一页时返回空列表
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page   string // 原始页码参数(query string中的page)
	Search string // 搜索关键词,空串匹配全部
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books        []*book.Book
	Count        int64               // 匹配总数
	TotalPages   int                 // ceil(Count/PageSize)
	Page         int                 // 归一化后的当前页
	NextPage     *pagination.PageRef // 有下一页时非nil
	PreviousPage *pagination.PageRef // 有上一页时非nil
	Search       string              // 原样回显
}

// Pages 页码列表(用于渲染页码链接)
func (r *ListBooksResponse) Pages() []int {
	return pagination.Meta{TotalPages: r.TotalPages}.Pages()
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "book.ListBooks")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveBookOperation("list", start, err)
	}()

	// 1. 页码归一化
	page := pagination.ParsePage(req.Page)
	span.SetAttributes(attribute.Int("page", page), attribute.String("search", req.Search))

	// 2. 查询当页记录和匹配总数
	books, total, err := uc.bookService.SearchBooks(ctx, book.SearchParams{
		Term:   req.Search,
		Offset: pagination.Offset(page, PageSize),
		Limit:  PageSize,
	})
	if err != nil {
		return nil, err
	}

	// 3. 计算分页信息
	meta := pagination.New(page, PageSize, total)

	return &ListBooksResponse{
		Books:        books,
		Count:        meta.Total,
		TotalPages:   meta.TotalPages,
		Page:         meta.Page,
		NextPage:     meta.NextPage,
		PreviousPage: meta.PreviousPage,
		Search:       req.Search,
	}, nil
}
