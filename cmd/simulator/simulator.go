package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Departments     []string
	Counters        int
	ArrivalInterval time.Duration
	PriorityRatio   float64
	RecallRatio     float64
	ServiceTime     time.Duration
	IdleBackoff     time.Duration
	Duration        time.Duration
}

type Stats struct {
	Issued   atomic.Int64
	Called   atomic.Int64
	Recalled atomic.Int64
	Finished atomic.Int64
	Idle     atomic.Int64
}

// Simulator drives a branch queue with simulated kiosk arrivals and
// attendant counters.
type Simulator struct {
	cli   queuerpc.QueueServiceClient
	cfg   Config
	l     logger.Logger
	stats Stats
}

func NewSimulator(cli queuerpc.QueueServiceClient, cfg Config, l logger.Logger) *Simulator {
	return &Simulator{cli: cli, cfg: cfg, l: l}
}

// Run blocks until ctx is done or the configured duration elapses.
func (s *Simulator) Run(ctx context.Context) error {
	if s.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Duration)
		defer cancel()
	}

	if len(s.cfg.Departments) == 0 {
		resp, err := s.cli.ListDepartments(ctx, &queuerpc.ListDepartmentsRequest{})
		if err != nil {
			return fmt.Errorf("list departments: %w", err)
		}
		for _, d := range resp.Departments {
			s.cfg.Departments = append(s.cfg.Departments, d.ID)
		}
	}
	if len(s.cfg.Departments) == 0 {
		return fmt.Errorf("no departments to issue tickets for")
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.runKiosk(gCtx) })
	for i := 1; i <= s.cfg.Counters; i++ {
		counter := fmt.Sprintf("%02d", i)
		g.Go(func() error { return s.runCounter(gCtx, counter) })
	}

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Simulator) Stats() *Stats {
	return &s.stats
}

func (s *Simulator) runKiosk(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.ArrivalInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		req := &queuerpc.IssueTicketRequest{
			DepartmentID: s.cfg.Departments[rand.IntN(len(s.cfg.Departments))],
			IsPriority:   rand.Float64() < s.cfg.PriorityRatio,
		}
		resp, err := s.cli.IssueTicket(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("issue ticket: %w", err)
		}

		s.stats.Issued.Add(1)
		s.l.Info(ctx, "Ticket issued",
			"number", resp.Ticket.Number,
			"department", resp.Ticket.DepartmentName,
			"priority", resp.Ticket.IsPriority,
		)
	}
}

func (s *Simulator) runCounter(ctx context.Context, counter string) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		resp, err := s.cli.CallNextTicket(ctx, &queuerpc.CallNextTicketRequest{Counter: counter})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("counter %s: call next: %w", counter, err)
		}
		if !resp.Found {
			s.stats.Idle.Add(1)
			if !sleep(ctx, s.cfg.IdleBackoff) {
				return nil
			}
			continue
		}

		s.stats.Called.Add(1)
		s.l.Info(ctx, "Ticket called", "number", resp.Ticket.Number, "counter", counter)

		if err := s.serve(ctx, counter, resp.Ticket); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// serve holds the customer for the service time, optionally recalling them
// half way, then finishes the ticket.
func (s *Simulator) serve(ctx context.Context, counter string, t *queuerpc.Ticket) error {
	half := s.cfg.ServiceTime / 2
	if !sleep(ctx, half) {
		return ctx.Err()
	}

	if rand.Float64() < s.cfg.RecallRatio {
		out, err := s.cli.RecallTicket(ctx, &queuerpc.TicketRequest{TicketID: t.ID})
		if err != nil {
			return fmt.Errorf("counter %s: recall: %w", counter, err)
		}
		if out.Applied {
			s.stats.Recalled.Add(1)
			s.l.Info(ctx, "Ticket recalled", "number", t.Number, "counter", counter)
		}
	}

	if !sleep(ctx, s.cfg.ServiceTime-half) {
		return ctx.Err()
	}

	out, err := s.cli.FinishTicket(ctx, &queuerpc.TicketRequest{TicketID: t.ID})
	if err != nil {
		return fmt.Errorf("counter %s: finish: %w", counter, err)
	}
	if out.Applied {
		s.stats.Finished.Add(1)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
