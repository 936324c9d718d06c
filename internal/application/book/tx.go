package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// tracerName 用例层Span的tracer名称
const tracerName = "bookcatalog/application/book"

// TxRunner 事务执行接口(由gormdb.TxManager实现)
// fn中使用传入的ctx访问仓储,即可参与同一事务
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookInput 创建/更新表单的原始输入
type BookInput struct {
	Title  string
	Author string
	Genre  string
	Year   string
}

func (in BookInput) draft() book.Draft {
	return book.Draft{
		Title:  in.Title,
		Author: in.Author,
		Genre:  in.Genre,
		Year:   in.Year,
	}
}
