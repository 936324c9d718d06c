package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Engine *gin.Engine
}

func newApp(engine *gin.Engine) *App {
	return &App{Engine: engine}
}

// provideBookRepository 图书仓储
// redis.enabled时外层套一层缓存装饰器
func provideBookRepository(cfg *config.Config, db *gorm.DB, log *zap.Logger) (book.Repository, func(), error) {
	repo := gormdb.NewBookRepository(db)
	if !cfg.Redis.Enabled {
		return repo, func() {}, nil
	}

	client, cleanup, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewCachedBookRepository(repo, client, cfg.Redis.BookTTL), cleanup, nil
}

// provideEventPublisher 图书事件发布者
// mq.enabled=false时使用NoopPublisher
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTopic, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}

	breaker := circuitbreaker.New("mq-publisher", circuitbreaker.Config{
		Timeout:     cfg.MQ.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.MQ.BreakerFailures),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	sender := messaging.NewGuardedSender(publisher, breaker)
	return messaging.NewBookEventPublisher(sender), cleanup, nil
}
