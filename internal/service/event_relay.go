package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka"
	"github.com/vogiaan1904/branchqueue/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	repository "github.com/vogiaan1904/branchqueue/internal/repository/redis"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// EventRelay forwards committed state changes to Kafka and Redis. It is
// best-effort: failures are logged and counted, never fed back into the
// queue.
type EventRelay interface {
	Start(ctx context.Context) error
	Stop() error
	GetStatus() RelayStatus
}

type RelayConfig struct {
	BranchID        string
	Buffer          int
	RetryAttempts   int
	RetryDelay      time.Duration
	ShutdownTimeout time.Duration
	BoardTTL        time.Duration
}

type eventRelay struct {
	// Dependencies
	e       Engine
	prod    producer.Producer
	repo    repository.StateRepository
	metrics *metrics.Metrics
	l       logger.Logger

	config RelayConfig

	// State management
	mu        sync.RWMutex
	isRunning bool
	startedAt time.Time
	stopCh    chan struct{}
	wg        sync.WaitGroup

	lastRelayed  time.Time
	lastRevision uint64
	totalRelayed int64
	errorCount   int64
}

// NewEventRelay builds a relay. prod and repo may be nil when the
// corresponding sink is disabled.
func NewEventRelay(
	e Engine,
	prod producer.Producer,
	repo repository.StateRepository,
	m *metrics.Metrics,
	l logger.Logger,
	cfg RelayConfig,
) EventRelay {
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 1
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &eventRelay{
		e:       e,
		prod:    prod,
		repo:    repo,
		metrics: m,
		l:       l,
		config:  cfg,
	}
}

func (r *eventRelay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return errors.New("event relay is already running")
	}

	r.l.Info(ctx, "Starting event relay",
		"kafka", r.prod != nil,
		"redis", r.repo != nil,
		"retry_attempts", r.config.RetryAttempts,
	)

	sub := r.e.Subscribe("service.event_relay", r.config.Buffer)
	r.isRunning = true
	r.startedAt = time.Now()
	r.stopCh = make(chan struct{})

	r.wg.Add(1)
	go r.relayLoop(ctx, sub, r.stopCh)

	return nil
}

func (r *eventRelay) Stop() error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return errors.New("event relay is not running")
	}
	close(r.stopCh)
	r.isRunning = false
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.l.Info(context.Background(), "Event relay stopped gracefully")
	case <-time.After(r.config.ShutdownTimeout):
		r.l.Warn(context.Background(), "Event relay shutdown timeout exceeded")
	}
	return nil
}

func (r *eventRelay) relayLoop(ctx context.Context, sub *queue.Subscription, stopCh <-chan struct{}) {
	defer r.wg.Done()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			r.l.Info(ctx, "Event relay stopped due to context cancellation")
			return
		case <-stopCh:
			return
		case c, ok := <-sub.Changes():
			if !ok {
				return
			}
			r.relay(ctx, c)
		}
	}
}

func (r *eventRelay) relay(ctx context.Context, c models.StateChange) {
	failed := false

	if r.prod != nil && c.Type.IsTicketChange() && c.Ticket != nil {
		if err := r.withRetry(ctx, func() error { return r.publishKafka(ctx, c) }); err != nil {
			failed = true
			r.metrics.RelayError("kafka")
			r.l.Error(ctx, "Failed to publish ticket event",
				"revision", c.Revision,
				"type", c.Type,
				"error", err,
			)
		}
	}

	if r.repo != nil {
		if err := r.withRetry(ctx, func() error { return r.repo.PublishChange(ctx, c) }); err != nil {
			failed = true
			r.metrics.RelayError("redis_pubsub")
			r.l.Error(ctx, "Failed to publish state change", "revision", c.Revision, "error", err)
		}

		if !c.Type.IsMediaChange() {
			if err := r.withRetry(ctx, func() error { return r.repo.SaveBoard(ctx, r.e.Board(), r.config.BoardTTL) }); err != nil {
				failed = true
				r.metrics.RelayError("redis_board")
				r.l.Error(ctx, "Failed to save board snapshot", "revision", c.Revision, "error", err)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRelayed = time.Now()
	r.lastRevision = c.Revision
	if failed {
		r.errorCount++
	} else {
		r.totalRelayed++
	}
}

func (r *eventRelay) publishKafka(ctx context.Context, c models.StateChange) error {
	ev := r.ticketEvent(c)
	switch c.Type {
	case models.ChangeTicketIssued:
		return r.prod.PublishTicketIssued(ctx, ev)
	case models.ChangeTicketCalled:
		return r.prod.PublishTicketCalled(ctx, ev)
	case models.ChangeTicketRecalled:
		return r.prod.PublishTicketRecalled(ctx, ev)
	case models.ChangeTicketFinished:
		return r.prod.PublishTicketFinished(ctx, ev)
	}
	return nil
}

func (r *eventRelay) ticketEvent(c models.StateChange) kafka.TicketEvent {
	t := c.Ticket
	return kafka.TicketEvent{
		Revision:       c.Revision,
		BranchID:       r.config.BranchID,
		TicketID:       t.ID,
		Number:         t.Number,
		DepartmentID:   t.DepartmentID,
		DepartmentName: r.e.View(t).DepartmentName,
		Status:         string(t.Status),
		Counter:        t.Counter,
		IsPriority:     t.IsPriority,
		SubCategory:    t.SubCategory,
		CreatedAt:      t.CreatedAt,
		CalledAt:       t.CalledAt,
		Timestamp:      c.Timestamp,
	}
}

func (r *eventRelay) withRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt < r.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.config.RetryDelay * time.Duration(attempt)):
			}
		}

		if err := operation(); err != nil {
			lastErr = err
			r.l.Warn(ctx, "Relay operation failed, retrying",
				"attempt", attempt+1,
				"max_attempts", r.config.RetryAttempts,
				"error", err,
			)
			continue
		}

		return nil
	}

	return fmt.Errorf("operation failed after %d attempts: %w", r.config.RetryAttempts, lastErr)
}

func (r *eventRelay) GetStatus() RelayStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RelayStatus{
		IsRunning:    r.isRunning,
		StartedAt:    r.startedAt,
		LastRelayed:  r.lastRelayed,
		LastRevision: r.lastRevision,
		TotalRelayed: r.totalRelayed,
		ErrorCount:   r.errorCount,
	}
}
