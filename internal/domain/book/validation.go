package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft 表单提交的原始字段(未经校验)
// validator tag说明:
// - notblank: 去除空白后不能为空
// - integer: 必须能解析为整数
type Draft struct {
	Title  string `validate:"notblank"`
	Author string `validate:"notblank"`
	Genre  string
	Year   string `validate:"omitempty,integer"`
}

// FieldError 字段级校验错误
type FieldError struct {
	Field   string // 字段名(Title/Author/Year)
	Message string // 用户可读的提示
}

// FieldErrors 字段错误列表(按字段声明顺序)
type FieldErrors []FieldError

// Has 是否包含指定字段的错误
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Messages 返回全部错误提示
func (fe FieldErrors) Messages() []string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return msgs
}

// SaveResult 创建/更新的结果
// 两种情况二选一:
// 1. Valid() == true: Book为已持久化的记录
// 2. Valid() == false: Book为未持久化的临时记录(仅用于回显),FieldErrors为校验错误
type SaveResult struct {
	Book        *Book
	FieldErrors FieldErrors
}

// Valid 是否校验通过(已持久化)
func (r SaveResult) Valid() bool {
	return len(r.FieldErrors) == 0
}

var validate = newValidator()

// messages 校验规则 → 提示模板
var messages = map[string]string{
	"notblank": `"%s" is required`,
	"integer":  `"%s" must be a number`,
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate 校验草稿,通过时返回nil
func (d Draft) Validate() FieldErrors {
	d.Year = strings.TrimSpace(d.Year)

	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{{Message: err.Error()}}
	}

	fes := make(FieldErrors, 0, len(ve))
	for _, e := range ve {
		tmpl, ok := messages[e.Tag()]
		if !ok {
			tmpl = `"%s" is invalid`
		}
		fes = append(fes, FieldError{
			Field:   e.Field(),
			Message: fmt.Sprintf(tmpl, e.Field()),
		})
	}
	return fes
}

// Build 根据草稿构建图书实体(不持久化)
// 无论校验是否通过都会返回实体,便于回显用户输入
func (d Draft) Build() (*Book, FieldErrors) {
	b := &Book{
		Title:  d.Title,
		Author: d.Author,
		Genre:  d.Genre,
	}
	if y, err := strconv.Atoi(strings.TrimSpace(d.Year)); err == nil {
		b.Year = &y
	}
	return b, d.Validate()
}
