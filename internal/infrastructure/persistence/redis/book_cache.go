package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// bookDetailCache 缓存名称（指标标签）
const bookDetailCache = "book_detail"

// CachedBookRepository 带Redis缓存的图书仓储（装饰器）
// 缓存策略：Cache-Aside
//   - 读：先查缓存，未命中查数据库并回写
//   - 写：更新/删除的事务提交后删除缓存（提交前被并发读回填的旧值也会被清掉）
//   - 搜索列表不缓存（关键词+页码组合太多）
//
// Redis不可用时只记录日志，降级为直接访问数据库
type CachedBookRepository struct {
	next   book.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedBookRepository 创建带缓存的图书仓储
func NewCachedBookRepository(next book.Repository, client *redis.Client, ttl time.Duration) *CachedBookRepository {
	return &CachedBookRepository{next: next, client: client, ttl: ttl}
}

// bookDetailKey 图书详情缓存key，如book:detail:42
func bookDetailKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}

func (r *CachedBookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.next.Create(ctx, b)
}

// FindByID 先查缓存，未命中再查数据库
func (r *CachedBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if b, ok := r.get(ctx, id); ok {
		return b, nil
	}

	b, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 事务中读到的值可能随事务回滚,提交后再回写
	cached := *b
	gormdb.AfterCommit(ctx, func(ctx context.Context) {
		r.set(ctx, &cached)
	})
	return b, nil
}

func (r *CachedBookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.next.Update(ctx, b); err != nil {
		return err
	}
	r.invalidateAfterCommit(ctx, b.ID)
	return nil
}

func (r *CachedBookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidateAfterCommit(ctx, id)
	return nil
}

func (r *CachedBookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	return r.next.Search(ctx, params)
}

// get 读取缓存，第二个返回值表示是否命中
func (r *CachedBookRepository) get(ctx context.Context, id uint) (*book.Book, bool) {
	val, err := r.client.Get(ctx, bookDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.count(metrics.ResultMiss)
			return nil, false
		}
		r.count(metrics.ResultError)
		logger.FromContext(ctx).Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		return nil, false
	}

	var b book.Book
	if err := json.Unmarshal(val, &b); err != nil {
		// 脏数据直接删掉，下次重新加载
		r.count(metrics.ResultError)
		r.invalidate(ctx, id)
		return nil, false
	}

	r.count(metrics.ResultHit)
	return &b, true
}

func (r *CachedBookRepository) set(ctx context.Context, b *book.Book) {
	val, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, bookDetailKey(b.ID), val, r.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("写入图书缓存失败", zap.Uint("book_id", b.ID), zap.Error(err))
	}
}

func (r *CachedBookRepository) invalidate(ctx context.Context, id uint) {
	if err := r.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		logger.FromContext(ctx).Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

func (r *CachedBookRepository) invalidateAfterCommit(ctx context.Context, id uint) {
	gormdb.AfterCommit(ctx, func(ctx context.Context) {
		r.invalidate(ctx, id)
	})
}

func (r *CachedBookRepository) count(result string) {
	metrics.InitMetrics()
	metrics.CacheRequestsTotal.WithLabelValues(bookDetailCache, result).Inc()
}
