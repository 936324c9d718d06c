package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

// BookRoutingKeys events子命令订阅的路由键
var BookRoutingKeys = []string{"book.*"}

// BookEventMessage 图书事件消息体(JSON)
type BookEventMessage struct {
	Type       string    `json:"type"`
	BookID     uint      `json:"book_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sender 消息发送接口(由mq.Publisher实现)
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// GuardedSender 带熔断的Sender
// 代理连续不可用时直接返回circuitbreaker.ErrOpenState,不再阻塞请求
type GuardedSender struct {
	next    Sender
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedSender 创建带熔断的Sender
func NewGuardedSender(next Sender, breaker *circuitbreaker.CircuitBreaker) *GuardedSender {
	return &GuardedSender{next: next, breaker: breaker}
}

func (s *GuardedSender) Publish(ctx context.Context, routingKey string, message interface{}) error {
	return s.breaker.Execute(func() error {
		return s.next.Publish(ctx, routingKey, message)
	})
}

// BookEventPublisher 图书事件发布者
// 发布失败只记录日志,不影响请求结果
type BookEventPublisher struct {
	sender Sender
	now    func() time.Time
}

// NewBookEventPublisher 创建图书事件发布者
func NewBookEventPublisher(sender Sender) *BookEventPublisher {
	return &BookEventPublisher{sender: sender, now: time.Now}
}

// Publish 发布图书事件,路由键即事件类型
func (p *BookEventPublisher) Publish(ctx context.Context, event book.Event) {
	msg := BookEventMessage{
		Type:       string(event.Type),
		BookID:     event.BookID,
		Title:      event.Title,
		Author:     event.Author,
		OccurredAt: p.now(),
	}

	if err := p.sender.Publish(ctx, string(event.Type), msg); err != nil {
		logger.FromContext(ctx).Warn("发布图书事件失败",
			zap.String("type", msg.Type),
			zap.Uint("book_id", msg.BookID),
			zap.Error(err),
		)
	}
}

// NoopPublisher mq.enabled=false时使用,丢弃所有事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, book.Event) {}

// LogBookEvent 消费端处理函数:解码并记录图书事件
// 无法解码的消息直接丢弃(返回nil),避免反复重新入队
func LogBookEvent(log *zap.Logger) func(ctx context.Context, routingKey string, body []byte) error {
	return func(_ context.Context, routingKey string, body []byte) error {
		msg, err := DecodeBookEvent(body)
		if err != nil {
			log.Warn("丢弃无法解码的图书事件", zap.String("routing_key", routingKey), zap.Error(err))
			return nil
		}

		log.Info("收到图书事件",
			zap.String("routing_key", routingKey),
			zap.String("type", msg.Type),
			zap.Uint("book_id", msg.BookID),
			zap.String("title", msg.Title),
			zap.String("author", msg.Author),
			zap.Time("occurred_at", msg.OccurredAt),
		)
		return nil
	}
}

// DecodeBookEvent 解码图书事件消息
func DecodeBookEvent(body []byte) (BookEventMessage, error) {
	var msg BookEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return BookEventMessage{}, fmt.Errorf("解码图书事件失败: %w", err)
	}
	if msg.BookID == 0 || msg.Type == "" {
		return BookEventMessage{}, fmt.Errorf("图书事件缺少type或book_id")
	}
	return msg, nil
}
