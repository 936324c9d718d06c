package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "消费图书事件并输出到日志",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.MQ.Enabled {
			return fmt.Errorf("未启用消息队列(mq.enabled=false)")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		consumer, err := mq.NewConsumer(
			cfg.MQ.URL,
			cfg.MQ.Exchange,
			mq.ExchangeTopic,
			cfg.MQ.Queue,
			messaging.BookRoutingKeys,
			log,
		)
		if err != nil {
			return err
		}
		defer consumer.Close()

		return consumer.Consume(ctx, messaging.LogBookEvent(log))
	},
}
