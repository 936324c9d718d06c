package book

import (
	"strconv"
	"time"
)

// Book 图书实体
// 设计说明:
// 1. ID由数据库自增生成,创建后不可修改
// 2. Title、Author必填;Genre、Year可选
// 3. Year使用指针区分"未填写"和"0"
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Genre     string // 类型(可选)
	Year      *int   // 出版年份(可选)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// YearString 返回年份的字符串形式,未填写时为空串
func (b *Book) YearString() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}

// Overwrite 用另一条记录的可编辑字段整体覆盖当前记录(ID不变)
func (b *Book) Overwrite(src *Book) {
	b.Title = src.Title
	b.Author = src.Author
	b.Genre = src.Genre
	b.Year = src.Year
	b.UpdatedAt = time.Now()
}
