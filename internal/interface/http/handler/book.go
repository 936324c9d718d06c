package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// 页面模板名
const (
	tmplIndex  = "books/index"
	tmplNew    = "books/new-book"
	tmplShow   = "books/show-book"
	tmplUpdate = "books/update-book"
	tmplDelete = "books/delete-book"
)

// BookHandler 图书页面处理器
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	getBook    *appbook.GetBookUseCase
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		getBook:    getBook,
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
	}
}

// List 图书列表(搜索 + 分页)
// GET /books?page=<int>&search=<string>
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	resp, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:   q.Page,
		Search: q.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.HTML(c, http.StatusOK, tmplIndex, gin.H{
		"title": "Books",
		"list":  dto.NewBookListView(resp),
	})
}

// NewForm 新建表单
// GET /books/new
func (h *BookHandler) NewForm(c *gin.Context) {
	response.HTML(c, http.StatusOK, tmplNew, gin.H{
		"title": "New Book",
		"book":  dto.BookView{},
	})
}

// Create 创建图书
// POST /books/new
// 成功跳转到详情页;校验失败回显表单和错误(200)
func (h *BookHandler) Create(c *gin.Context) {
	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), form.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Valid() {
		response.HTML(c, http.StatusOK, tmplNew, gin.H{
			"title":  "New Book",
			"book":   dto.TransientBookView(0, form),
			"errors": result.FieldErrors.Messages(),
		})
		return
	}

	response.Redirect(c, bookPath(result.Book.ID))
}

// Show 图书详情
// GET /books/:id
func (h *BookHandler) Show(c *gin.Context) {
	b, ok := h.findBook(c)
	if !ok {
		return
	}

	response.HTML(c, http.StatusOK, tmplShow, gin.H{
		"title": b.Title,
		"book":  dto.NewBookView(b),
	})
}

// EditForm 编辑表单
// GET /books/:id/update-book
func (h *BookHandler) EditForm(c *gin.Context) {
	b, ok := h.findBook(c)
	if !ok {
		return
	}

	response.HTML(c, http.StatusOK, tmplUpdate, gin.H{
		"title": "Update Book",
		"book":  dto.NewBookView(b),
	})
}

// Update 更新图书
// POST /books/:id
// 不存在返回404(不会新建);校验失败回显表单,ID使用路径中的id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), id, form.Input())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Valid() {
		response.HTML(c, http.StatusOK, tmplUpdate, gin.H{
			"title":  "Update Book",
			"book":   dto.TransientBookView(id, form),
			"errors": result.FieldErrors.Messages(),
		})
		return
	}

	response.Redirect(c, bookPath(id))
}

// DeleteForm 删除确认页
// GET /books/:id/delete
func (h *BookHandler) DeleteForm(c *gin.Context) {
	b, ok := h.findBook(c)
	if !ok {
		return
	}

	response.HTML(c, http.StatusOK, tmplDelete, gin.H{
		"title": "Delete Book",
		"book":  dto.NewBookView(b),
	})
}

// Delete 删除图书
// POST /books/:id/delete
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Redirect(c, "/books")
}

// findBook 按路径id查询图书,失败时已写入响应
func (h *BookHandler) findBook(c *gin.Context) (*book.Book, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}

	b, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return b, true
}

// parseID 解析路径参数id,非正整数按"不存在"处理(404)
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		logger.FromContext(c.Request.Context()).Debug("无效的图书id", zap.String("id", raw))
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}

func bookPath(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}
