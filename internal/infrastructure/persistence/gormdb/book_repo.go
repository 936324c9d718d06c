package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误包装为AppError,记录不存在转换为ErrBookNotFound
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrapf(err, "查询图书失败(id=%d)", id)
	}

	return toBookEntity(&model), nil
}

// Update 整体覆盖可编辑字段
// 使用map更新:Genre为空串、Year为nil时也会写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	now := time.Now()
	err := dbFromContext(ctx, r.db).
		Model(&BookModel{ID: b.ID}).
		Updates(map[string]interface{}{
			"title":      b.Title,
			"author":     b.Author,
			"genre":      b.Genre,
			"year":       b.Year,
			"updated_at": now,
		}).Error

	if err != nil {
		return apperrors.Wrapf(err, "更新图书失败(id=%d)", b.ID)
	}

	b.UpdatedAt = now
	return nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrapf(result.Error, "删除图书失败(id=%d)", id)
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Search 关键词过滤 + 分页查询
// 匹配规则:关键词是title/author/genre/year(字符串形式)任一字段的子串即命中,不区分大小写
// 排序:始终按id升序,保证翻页稳定
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	db := dbFromContext(ctx, r.db)
	query := db.Model(&BookModel{})

	// 关键词为空时不加条件(匹配全部)
	if params.Term != "" {
		pattern := containsPattern(params.Term)
		op := likeOperator(db)
		cond := fmt.Sprintf(
			"title %[1]s ? ESCAPE '%[2]s' OR author %[1]s ? ESCAPE '%[2]s' OR genre %[1]s ? ESCAPE '%[2]s' OR %[3]s %[1]s ? ESCAPE '%[2]s'",
			op, likeEscape, yearAsText(db),
		)
		query = query.Where(cond, pattern, pattern, pattern, pattern)
	}

	// Session之后Count和Find各自使用独立的Statement
	query = query.Session(&gorm.Session{})

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 分页查询
	err := query.Order("id ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Year:      b.Year,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Genre:     model.Genre,
		Year:      model.Year,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
