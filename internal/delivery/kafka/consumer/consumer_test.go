package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

func newTestConsumer(t *testing.T) (*Consumer, *queue.Engine) {
	t.Helper()
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	_, err := e.AddDepartment(context.Background(), models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)
	return NewConsumer(nil, service.NewQueueService(e, l), l), e
}

func message(t *testing.T, topic string, v any) *sarama.ConsumerMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: topic, Value: b}
}

func TestProcessKioskAndCounterCommands(t *testing.T) {
	c, e := newTestConsumer(t)
	ctx := context.Background()

	require.NoError(t, c.processMessage(ctx, message(t, kafka.TopicKioskTicketRequested, kafka.TicketRequestedEvent{DepartmentID: "cxa"})))
	require.Len(t, e.Tickets(), 1)
	id := e.Tickets()[0].ID

	require.NoError(t, c.processMessage(ctx, message(t, kafka.TopicCounterCallRequested, kafka.CounterCallRequestedEvent{Counter: "07"})))
	tk, _ := e.Ticket(id)
	assert.Equal(t, models.TicketStatusCalled, tk.Status)
	assert.Equal(t, "07", tk.Counter)

	require.NoError(t, c.processMessage(ctx, message(t, kafka.TopicCounterRecallRequested, kafka.CounterTicketRequestedEvent{TicketID: id})))
	require.NoError(t, c.processMessage(ctx, message(t, kafka.TopicCounterFinishRequested, kafka.CounterTicketRequestedEvent{TicketID: id})))
	tk, _ = e.Ticket(id)
	assert.Equal(t, models.TicketStatusFinished, tk.Status)

	require.NoError(t, c.processMessage(ctx, message(t, kafka.TopicCounterCallRequested, kafka.CounterCallRequestedEvent{Counter: "07"})))
}

func TestProcessRejectsBadCommands(t *testing.T) {
	c, _ := newTestConsumer(t)
	ctx := context.Background()

	err := c.processMessage(ctx, &sarama.ConsumerMessage{Topic: kafka.TopicKioskTicketRequested, Value: []byte("{")})
	assert.Error(t, err)

	err = c.processMessage(ctx, message(t, kafka.TopicKioskTicketRequested, kafka.TicketRequestedEvent{DepartmentID: "nope"}))
	assert.ErrorIs(t, err, service.ErrDepartmentNotFound)

	assert.NoError(t, c.processMessage(ctx, &sarama.ConsumerMessage{Topic: "other.topic"}))
}
