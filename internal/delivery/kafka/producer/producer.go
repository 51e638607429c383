package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	kafka "github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type Producer interface {
	PublishTicketIssued(ctx context.Context, event kafka.TicketEvent) error
	PublishTicketCalled(ctx context.Context, event kafka.TicketEvent) error
	PublishTicketRecalled(ctx context.Context, event kafka.TicketEvent) error
	PublishTicketFinished(ctx context.Context, event kafka.TicketEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
	now  func() time.Time
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
		now:  time.Now,
	}
}

func (p *implProducer) PublishTicketIssued(ctx context.Context, event kafka.TicketEvent) error {
	return p.publish(ctx, kafka.TopicTicketIssued, event)
}

func (p *implProducer) PublishTicketCalled(ctx context.Context, event kafka.TicketEvent) error {
	return p.publish(ctx, kafka.TopicTicketCalled, event)
}

func (p *implProducer) PublishTicketRecalled(ctx context.Context, event kafka.TicketEvent) error {
	return p.publish(ctx, kafka.TopicTicketRecalled, event)
}

func (p *implProducer) PublishTicketFinished(ctx context.Context, event kafka.TicketEvent) error {
	return p.publish(ctx, kafka.TopicTicketFinished, event)
}

func (p *implProducer) publish(ctx context.Context, topic string, event kafka.TicketEvent) error {
	now := p.now()
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.publish: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.DepartmentID), // Partition by department for ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(now.Format(time.RFC3339)),
			},
			{
				Key:   []byte("branch_id"),
				Value: []byte(event.BranchID),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
