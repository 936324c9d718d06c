package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. Redis缓存以装饰器方式实现同一接口
type Repository interface {
	// Create 创建图书,成功后回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 整体覆盖图书的可编辑字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除),不存在时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// Search 关键词过滤 + 分页查询,返回当页记录和匹配总数
	Search(ctx context.Context, params SearchParams) ([]*Book, int64, error)
}

// SearchParams 搜索查询参数
type SearchParams struct {
	Term   string // 搜索关键词(匹配标题、作者、类型、年份),空串匹配全部
	Offset int    // 偏移量
	Limit  int    // 每页数量
}

// EventPublisher 图书变更事件发布接口
// 发布失败不影响主流程,由实现方自行记录日志
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// EventType 事件类型(同时作为消息路由键)
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event 图书变更事件
type Event struct {
	Type   EventType
	BookID uint
	Title  string
	Author string
}

// NewEvent 根据图书实体构建事件
func NewEvent(t EventType, b *Book) Event {
	return Event{Type: t, BookID: b.ID, Title: b.Title, Author: b.Author}
}
