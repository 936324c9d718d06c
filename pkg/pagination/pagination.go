// Package pagination 提供页码解析与分页元数据计算
//
// 约定：
//   - 页码从1开始，缺省、非数字、<=0 都视为第1页
//   - offset = (page-1) * pageSize，limit = pageSize
//   - 不限制页码上限，超出最后一页时结果为空、没有下一页
//   - 页码极大时offset饱和到math.MaxInt，不会溢出成负数
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultPage 默认页码
const DefaultPage = 1

// PageRef 相邻页描述（上一页/下一页）
type PageRef struct {
	Page int `json:"page"`
}

// Meta 分页元数据
type Meta struct {
	Page         int      `json:"page"`          // 当前页码
	PageSize     int      `json:"page_size"`     // 每页大小
	Total        int64    `json:"total"`         // 匹配总数
	TotalPages   int      `json:"total_pages"`   // 总页数 = ceil(Total/PageSize)
	NextPage     *PageRef `json:"next_page"`     // page*pageSize < total 时存在
	PreviousPage *PageRef `json:"previous_page"` // (page-1)*pageSize > 0 时存在
}

// ParsePage 解析页码参数
// 超出int范围的正整数按math.MaxInt处理(必然在最后一页之后)
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return math.MaxInt
	}
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// Offset 计算偏移量，溢出时返回math.MaxInt
func Offset(page, pageSize int) int {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// New 根据页码、每页大小和匹配总数计算分页元数据
func New(page, pageSize int, total int64) Meta {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = 1
	}

	size := int64(pageSize)
	meta := Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + size - 1) / size),
	}

	// page*size < total 等价于 page < TotalPages，这样写不会溢出
	if int64(page) < int64(meta.TotalPages) {
		meta.NextPage = &PageRef{Page: page + 1}
	}
	if page > 1 {
		meta.PreviousPage = &PageRef{Page: page - 1}
	}

	return meta
}

// Pages 返回 1..TotalPages 的页码列表（用于渲染页码链接）
func (m Meta) Pages() []int {
	pages := make([]int, m.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
