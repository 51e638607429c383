package consumer

import (
	"context"
	"sync"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// Consumer applies kiosk and counter commands arriving over Kafka.
type Consumer struct {
	consGr sarama.ConsumerGroup
	qSvc   service.QueueService
	l      logger.Logger
	wg     sync.WaitGroup
}

func NewConsumer(
	consGr sarama.ConsumerGroup,
	qSvc service.QueueService,
	l logger.Logger,
) *Consumer {
	return &Consumer{
		consGr: consGr,
		qSvc:   qSvc,
		l:      l,
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case kafka.TopicKioskTicketRequested:
		return c.HandleTicketRequested(ctx, msg)
	case kafka.TopicCounterCallRequested:
		return c.HandleCallRequested(ctx, msg)
	case kafka.TopicCounterRecallRequested:
		return c.HandleRecallRequested(ctx, msg)
	case kafka.TopicCounterFinishRequested:
		return c.HandleFinishRequested(ctx, msg)
	default:
		c.l.Warn(ctx, "Unknown topic", "topic", msg.Topic)
		return nil
	}
}

func Topics() []string {
	return []string{
		kafka.TopicKioskTicketRequested,
		kafka.TopicCounterCallRequested,
		kafka.TopicCounterRecallRequested,
		kafka.TopicCounterFinishRequested,
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	topics := Topics()
	c.wg.Go(func() {
		for {
			if err := c.consGr.Consume(ctx, topics, c); err != nil {
				c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
			}

			if ctx.Err() != nil {
				c.l.Infof(ctx, "delivery.kafka.consumer.Start: %v", ctx.Err())
				return
			}
		}
	})

	c.wg.Go(func() {
		for err := range c.consGr.Errors() {
			c.l.Errorf(ctx, "delivery.kafka.consumer.Start: %v", err)
		}
	})

	c.l.Info(ctx, "Consumer is consuming topics", "topics", topics)
	return nil
}

func (c *Consumer) Close() error {
	if err := c.consGr.Close(); err != nil {
		return err
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session started")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session ended")
	return nil
}

func (c *Consumer) ConsumeClaim(ss sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			// Malformed commands are logged and committed so they do not
			// block the partition.
			if err := c.processMessage(ss.Context(), message); err != nil {
				c.l.Error(ss.Context(), "Failed to process command",
					"topic", message.Topic,
					"offset", message.Offset,
					"error", err,
				)
			}

			ss.MarkMessage(message, "")

		case <-ss.Context().Done():
			return nil
		}
	}
}
