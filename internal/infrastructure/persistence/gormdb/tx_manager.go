package gormdb

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的key
type txKey struct{}

// hooksKey 提交后回调在context中的key
type hooksKey struct{}

// commitHooks 事务提交成功后依次执行的回调
type commitHooks struct {
	fns []func(ctx context.Context)
}

// TxManager 事务管理器
// 说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 支持嵌套事务(GORM自动使用Savepoint),提交后回调统一在最外层提交后执行
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    book, err := bookRepo.FindByID(ctx, id)
//	    if err != nil {
//	        return err
//	    }
//	    return bookRepo.Update(ctx, book)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// 嵌套事务:沿用外层的回调列表,由外层提交后执行
	if _, nested := ctx.Value(hooksKey{}).(*commitHooks); nested {
		return dbFromContext(ctx, m.db).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
	}

	hooks := &commitHooks{}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中,Repository通过dbFromContext取出
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(context.WithValue(txCtx, hooksKey{}, hooks))
	})
	if err != nil {
		return err
	}

	for _, hook := range hooks.fns {
		hook(ctx)
	}
	return nil
}

// AfterCommit 注册事务提交成功后执行的回调
// 不在事务中时立即执行;事务回滚时不执行
// 用于缓存失效等必须看到已提交数据的操作
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn(ctx)
}

// dbFromContext 从context获取事务DB,如果没有则使用默认DB
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}
