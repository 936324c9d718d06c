package mq

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// fakeAcknowledger 记录Ack/Nack调用
type fakeAcknowledger struct {
	acked   []uint64
	nacked  []uint64
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	f.nacked = append(f.nacked, tag)
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func TestConsumer_handle(t *testing.T) {
	c := &Consumer{queue: "test.queue", log: zaptest.NewLogger(t)}
	ctx := context.Background()

	t.Run("处理成功Ack", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		var gotKey string
		c.handle(ctx, amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, RoutingKey: "book.created", Body: []byte(`{}`)},
			func(_ context.Context, routingKey string, _ []byte) error {
				gotKey = routingKey
				return nil
			})

		assert.Equal(t, "book.created", gotKey)
		assert.Equal(t, []uint64{1}, ack.acked)
		assert.Empty(t, ack.nacked)
	})

	t.Run("处理失败Nack并重新入队", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		c.handle(ctx, amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, RoutingKey: "book.deleted"},
			func(context.Context, string, []byte) error { return errors.New("boom") })

		assert.Empty(t, ack.acked)
		assert.Equal(t, []uint64{2}, ack.nacked)
		assert.True(t, ack.requeue)
	})
}

// amqpURL 集成测试使用的RabbitMQ地址，未设置时跳过
func amqpURL(t *testing.T) string {
	url := os.Getenv("BOOKCATALOG_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置BOOKCATALOG_TEST_AMQP_URL，跳过RabbitMQ集成测试")
	}
	return url
}

type testEvent struct {
	BookID uint   `json:"book_id"`
	Action string `json:"action"`
}

func TestPubSub_Integration(t *testing.T) {
	url := amqpURL(t)
	log := zap.NewNop()
	const exchange = "bookcatalog.test.events"

	consumer, err := NewConsumer(url, exchange, ExchangeTopic, "bookcatalog.test.queue", []string{"book.*"}, log)
	require.NoError(t, err)
	defer consumer.Close()

	publisher, err := NewPublisher(url, exchange, ExchangeTopic, log)
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		mu       sync.Mutex
		received []string
	)
	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(ctx, func(_ context.Context, _ string, body []byte) error {
			var ev testEvent
			if err := json.Unmarshal(body, &ev); err != nil {
				return err
			}
			mu.Lock()
			received = append(received, ev.Action)
			if len(received) == 3 {
				cancel()
			}
			mu.Unlock()
			return nil
		})
	}()

	for i, action := range []string{"created", "updated", "deleted"} {
		require.NoError(t, publisher.Publish(ctx, "book."+action, testEvent{BookID: uint(i + 1), Action: action}))
	}

	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"created", "updated", "deleted"}, received)
}
