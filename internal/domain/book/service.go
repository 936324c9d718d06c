package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务负责校验规则和"先查后写"的流程
// 2. 校验失败不是错误,通过SaveResult返回,调用方按结果分支
// 3. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:Title、Author不能为空,校验不通过时不写库
	CreateBook(ctx context.Context, draft Draft) (SaveResult, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体更新图书
	// 业务规则:图书必须存在(否则ErrBookNotFound),校验规则同创建
	UpdateBook(ctx context.Context, id uint, draft Draft) (SaveResult, error)

	// DeleteBook 删除图书,返回被删除的记录
	DeleteBook(ctx context.Context, id uint) (*Book, error)

	// SearchBooks 关键词过滤 + 分页查询
	SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, draft Draft) (SaveResult, error) {
	// 1. 构建实体并校验
	book, fes := draft.Build()
	if len(fes) > 0 {
		return SaveResult{Book: book, FieldErrors: fes}, nil
	}

	// 2. 持久化
	if err := s.repo.Create(ctx, book); err != nil {
		return SaveResult{}, err
	}

	return SaveResult{Book: book}, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, draft Draft) (SaveResult, error) {
	// 1. 查询图书(不存在直接返回ErrBookNotFound,不会新建)
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SaveResult{}, err
	}

	// 2. 校验提交内容,临时记录的ID强制为路径ID
	candidate, fes := draft.Build()
	candidate.ID = id
	if len(fes) > 0 {
		return SaveResult{Book: candidate, FieldErrors: fes}, nil
	}

	// 3. 覆盖并持久化
	existing.Overwrite(candidate)
	if err := s.repo.Update(ctx, existing); err != nil {
		return SaveResult{}, err
	}

	return SaveResult{Book: existing}, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return existing, nil
}

// SearchBooks 分页查询
func (s *service) SearchBooks(ctx context.Context, params SearchParams) ([]*Book, int64, error) {
	return s.repo.Search(ctx, params)
}
