package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/internal/service"
)

func (c *Consumer) HandleTicketRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.TicketRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		return fmt.Errorf("decode ticket request: %w", err)
	}

	v, err := c.qSvc.IssueTicket(ctx, service.IssueTicketInput{
		DepartmentID: e.DepartmentID,
		IsPriority:   e.IsPriority,
		SubCategory:  e.SubCategory,
		CustomerID:   e.CustomerID,
	})
	if err != nil {
		return fmt.Errorf("issue ticket: %w", err)
	}

	c.l.Info(ctx, "Remote ticket issued", "number", v.Number, "department_id", v.DepartmentID)
	return nil
}

func (c *Consumer) HandleCallRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.CounterCallRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		return fmt.Errorf("decode call request: %w", err)
	}

	v, ok, err := c.qSvc.CallNext(ctx, service.CallNextInput{
		Counter:      e.Counter,
		DepartmentID: e.DepartmentID,
	})
	if err != nil {
		return fmt.Errorf("call next: %w", err)
	}
	if !ok {
		c.l.Info(ctx, "Remote call found no waiting ticket", "counter", e.Counter)
		return nil
	}

	c.l.Info(ctx, "Remote call", "number", v.Number, "counter", v.Counter)
	return nil
}

func (c *Consumer) HandleRecallRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.CounterTicketRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		return fmt.Errorf("decode recall request: %w", err)
	}

	out := c.qSvc.Recall(ctx, e.TicketID)
	c.l.Debug(ctx, "Remote recall", "ticket_id", e.TicketID, "applied", out.Applied)
	return nil
}

func (c *Consumer) HandleFinishRequested(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.CounterTicketRequestedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		return fmt.Errorf("decode finish request: %w", err)
	}

	out := c.qSvc.Finish(ctx, e.TicketID)
	c.l.Debug(ctx, "Remote finish", "ticket_id", e.TicketID, "applied", out.Applied)
	return nil
}
