package dto

import (
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookForm 创建/更新表单(application/x-www-form-urlencoded)
// 字段校验由领域层完成,这里只负责绑定
type BookForm struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Year   string `form:"year"`
}

// Input 转换为用例输入
func (f BookForm) Input() appbook.BookInput {
	return appbook.BookInput{
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
		Year:   f.Year,
	}
}

// ListBooksQuery 列表查询参数
// page保留原始字符串,由用例归一化
type ListBooksQuery struct {
	Page   string `form:"page"`
	Search string `form:"search"`
}

// BookView 页面展示用的图书
type BookView struct {
	ID     uint
	Title  string
	Author string
	Genre  string
	Year   string // 未填写时为空串
}

// NewBookView 已持久化记录 → 展示模型
func NewBookView(b *book.Book) BookView {
	return BookView{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.YearString(),
	}
}

// NewBookViews 批量转换
func NewBookViews(books []*book.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = NewBookView(b)
	}
	return views
}

// TransientBookView 校验失败时回显用户提交的原始内容
// id为0表示新建表单
func TransientBookView(id uint, f BookForm) BookView {
	return BookView{
		ID:     id,
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
		Year:   f.Year,
	}
}

// BookListView 列表页数据
type BookListView struct {
	Books        []BookView
	Count        int64
	TotalPages   int
	Page         int
	Pages        []int
	NextPage     int // 0表示没有下一页
	PreviousPage int // 0表示没有上一页
	Search       string
}

// NewBookListView 用例结果 → 列表页数据
func NewBookListView(resp *appbook.ListBooksResponse) BookListView {
	v := BookListView{
		Books:      NewBookViews(resp.Books),
		Count:      resp.Count,
		TotalPages: resp.TotalPages,
		Page:       resp.Page,
		Pages:      resp.Pages(),
		Search:     resp.Search,
	}
	if resp.NextPage != nil {
		v.NextPage = resp.NextPage.Page
	}
	if resp.PreviousPage != nil {
		v.PreviousPage = resp.PreviousPage.Page
	}
	return v
}
