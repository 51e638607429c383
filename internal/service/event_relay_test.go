package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type fakeStateRepo struct {
	mu        sync.Mutex
	changes   []models.StateChange
	boards    []models.Board
	failTimes int
}

func (f *fakeStateRepo) PublishChange(_ context.Context, c models.StateChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTimes > 0 {
		f.failTimes--
		return errors.New("redis unavailable")
	}
	f.changes = append(f.changes, c)
	return nil
}

func (f *fakeStateRepo) SaveBoard(_ context.Context, b models.Board, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boards = append(f.boards, b)
	return nil
}

func (f *fakeStateRepo) LoadBoard(context.Context) (*models.Board, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStateRepo) changeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.changes)
}

func TestEventRelayForwardsChanges(t *testing.T) {
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	ctx := context.Background()
	_, err := e.AddDepartment(ctx, models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)

	sp := mocks.NewSyncProducer(t, nil)
	topics := make(chan string, 2)
	check := func(msg *sarama.ProducerMessage) error {
		topics <- msg.Topic
		return nil
	}
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(check)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(check)

	repo := &fakeStateRepo{failTimes: 1}
	relay := NewEventRelay(e, producer.NewProducer(sp, l), repo, nil, l, RelayConfig{
		BranchID:      "main",
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})
	require.NoError(t, relay.Start(ctx))
	assert.Error(t, relay.Start(ctx))

	tk, err := e.GenerateTicket(ctx, queue.TicketRequest{DepartmentID: "cxa"})
	require.NoError(t, err)
	_, ok := e.CallNextTicket(ctx, "05", "")
	require.True(t, ok)

	require.Eventually(t, func() bool { return relay.GetStatus().TotalRelayed == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, kafka.TopicTicketIssued, <-topics)
	assert.Equal(t, kafka.TopicTicketCalled, <-topics)

	status := relay.GetStatus()
	assert.True(t, status.IsRunning)
	assert.Equal(t, int64(2), status.TotalRelayed)
	assert.Equal(t, uint64(3), status.LastRevision)

	repo.mu.Lock()
	assert.Equal(t, tk.ID, repo.changes[0].Ticket.ID)
	assert.Len(t, repo.boards, 2)
	repo.mu.Unlock()

	require.NoError(t, relay.Stop())
	assert.Error(t, relay.Stop())
	assert.False(t, relay.GetStatus().IsRunning)
	require.NoError(t, sp.Close())
}

func TestEventRelayCountsFailures(t *testing.T) {
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	ctx := context.Background()

	repo := &fakeStateRepo{failTimes: 10}
	relay := NewEventRelay(e, nil, repo, nil, l, RelayConfig{RetryAttempts: 2, RetryDelay: time.Millisecond})
	require.NoError(t, relay.Start(ctx))
	defer relay.Stop()

	_, err := e.AddDepartment(ctx, models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return relay.GetStatus().ErrorCount == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, repo.changeCount())
}
