package queue

import (
	"github.com/google/uuid"
	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
)

type TicketRequest struct {
	DepartmentID string
	IsPriority   bool
	SubCategory  string
	CustomerID   string
}

type Option func(*Engine)

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator replaces uuid.NewString for ticket, department and
// media ids.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) {
		e.newID = f
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func defaultID() string {
	return uuid.NewString()
}
