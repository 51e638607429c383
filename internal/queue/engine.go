package queue

import (
	"context"
	"sync"

	"github.com/vogiaan1904/branchqueue/internal/metrics"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/pkg/clock"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// Engine is the single owner of queue state. Every mutation runs under
// mu, so selecting a candidate and marking it CALLED cannot interleave
// with another call.
type Engine struct {
	mu       sync.Mutex
	reg      *Registry
	revision uint64

	subMu sync.Mutex
	subs  map[*Subscription]struct{}

	clock   clock.Clock
	newID   func() string
	metrics *metrics.Metrics
	l       logger.Logger
}

func NewEngine(l logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		reg:   NewRegistry(),
		subs:  make(map[*Subscription]struct{}),
		clock: clock.Real(),
		newID: defaultID,
		l:     l,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateTicket issues a WAITING ticket for an existing department.
func (e *Engine) GenerateTicket(ctx context.Context, req TicketRequest) (*models.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.reg.IssueTicket(e.newID(), req, e.clock.Now())
	if err != nil {
		return nil, err
	}

	e.metrics.TicketIssued(t.DepartmentID)
	e.commit(ctx, models.StateChange{Type: models.ChangeTicketIssued, Ticket: t.Clone(), DepartmentID: t.DepartmentID})
	return t.Clone(), nil
}

// CallNextTicket assigns the next WAITING ticket to counter. It reports
// false, with no side effect, when nothing is waiting.
func (e *Engine) CallNextTicket(ctx context.Context, counter, departmentID string) (*models.Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := SelectNext(e.reg.Tickets(), departmentID)
	if t == nil {
		return nil, false
	}
	if !e.reg.Apply(t, ActionCall, counter, e.clock.Now()) {
		return nil, false
	}

	e.metrics.TicketCalled(counter)
	e.commit(ctx, models.StateChange{Type: models.ChangeTicketCalled, Ticket: t.Clone(), DepartmentID: t.DepartmentID})
	return t.Clone(), true
}

// RecallTicket re-stamps calledAt of a CALLED ticket. Unknown ids and
// tickets in any other status are ignored.
func (e *Engine) RecallTicket(ctx context.Context, id string) (*models.Ticket, bool) {
	return e.transition(ctx, id, ActionRecall, models.ChangeTicketRecalled)
}

// FinishTicket moves a WAITING or CALLED ticket to FINISHED. Unknown ids
// and terminal tickets are ignored.
func (e *Engine) FinishTicket(ctx context.Context, id string) (*models.Ticket, bool) {
	return e.transition(ctx, id, ActionFinish, models.ChangeTicketFinished)
}

func (e *Engine) transition(ctx context.Context, id string, action Action, change models.ChangeType) (*models.Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.reg.Ticket(id)
	if !ok {
		e.l.Debug(ctx, "queue.Engine.transition: unknown ticket", "ticket_id", id, "action", action)
		return nil, false
	}
	if !e.reg.Apply(t, action, t.Counter, e.clock.Now()) {
		e.l.Debug(ctx, "queue.Engine.transition: ignored", "ticket_id", id, "action", action, "status", t.Status)
		return nil, false
	}

	switch action {
	case ActionRecall:
		e.metrics.TicketRecalled()
	case ActionFinish:
		e.metrics.TicketFinished()
	}
	e.commit(ctx, models.StateChange{Type: change, Ticket: t.Clone(), DepartmentID: t.DepartmentID})
	return t.Clone(), true
}

func (e *Engine) AddDepartment(ctx context.Context, d models.Department) (models.Department, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if d.ID == "" {
		d.ID = e.newID()
	}
	if err := e.reg.AddDepartment(d); err != nil {
		return models.Department{}, err
	}

	added, _ := e.reg.Department(d.ID)
	e.commit(ctx, models.StateChange{Type: models.ChangeDepartmentAdded, DepartmentID: d.ID})
	return added.Clone(), nil
}

func (e *Engine) RemoveDepartment(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.reg.RemoveDepartment(id) {
		return false
	}
	e.commit(ctx, models.StateChange{Type: models.ChangeDepartmentRemoved, DepartmentID: id})
	return true
}

func (e *Engine) AddMedia(ctx context.Context, m models.MarketingMedia) (models.MarketingMedia, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.ID == "" {
		m.ID = e.newID()
	}
	if err := e.reg.AddMedia(m); err != nil {
		return models.MarketingMedia{}, err
	}
	e.commit(ctx, models.StateChange{Type: models.ChangeMediaAdded, MediaID: m.ID})
	return m, nil
}

func (e *Engine) RemoveMedia(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.reg.RemoveMedia(id) {
		return false
	}
	e.commit(ctx, models.StateChange{Type: models.ChangeMediaRemoved, MediaID: id})
	return true
}

// commit bumps the revision and fans the change out. Must hold mu.
func (e *Engine) commit(ctx context.Context, c models.StateChange) {
	e.revision++
	c.Revision = e.revision
	c.Timestamp = e.clock.Now()
	e.metrics.SetWaiting(CountWaiting(e.reg.Tickets()))
	e.notify(ctx, c)
}

func (e *Engine) notify(ctx context.Context, c models.StateChange) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for s := range e.subs {
		select {
		case s.ch <- c:
		default:
			s.signalDrop()
			e.metrics.SubscriberDropped()
			e.l.Warn(ctx, "queue.Engine.notify: subscriber buffer full, change dropped",
				"subscriber", s.name,
				"revision", c.Revision,
				"type", c.Type,
			)
		}
	}
}

// Subscribe registers an observer. buffer <= 0 selects the default size.
func (e *Engine) Subscribe(name string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	s := &Subscription{
		name:    name,
		ch:      make(chan models.StateChange, buffer),
		dropped: make(chan struct{}, 1),
		engine:  e,
	}

	e.subMu.Lock()
	e.subs[s] = struct{}{}
	e.subMu.Unlock()
	return s
}

func (e *Engine) Revision() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

func (e *Engine) Departments() []models.Department {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg.Departments()
}

func (e *Engine) Department(id string) (models.Department, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.reg.Department(id)
	return d.Clone(), ok
}

func (e *Engine) Ticket(id string) (*models.Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.reg.Ticket(id)
	return t.Clone(), ok
}

func (e *Engine) Tickets() []*models.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(e.reg.Tickets())
}

func (e *Engine) Playlist() []models.MarketingMedia {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg.Media()
}

func (e *Engine) LastCalledTicket() (*models.Ticket, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := LastCalled(e.reg.Tickets())
	return t.Clone(), t != nil
}

func (e *Engine) WaitingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CountWaiting(e.reg.Tickets())
}

func (e *Engine) RecentlyCalled() []*models.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(RecentlyCalled(e.reg.Tickets()))
}

func (e *Engine) WaitingTickets(departmentID string) []*models.Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAll(Waiting(e.reg.Tickets(), departmentID))
}

// View enriches a ticket with its department name.
func (e *Engine) View(t *models.Ticket) models.TicketView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view(t)
}

func (e *Engine) view(t *models.Ticket) models.TicketView {
	return models.TicketView{Ticket: t.Clone(), DepartmentName: e.reg.DepartmentName(t.DepartmentID)}
}

// Board builds the display projection in one consistent read.
func (e *Engine) Board() models.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	tickets := e.reg.Tickets()
	b := models.Board{
		RecentlyCalled: []models.TicketView{},
		WaitingCount:   CountWaiting(tickets),
		Revision:       e.revision,
		UpdatedAt:      e.clock.Now(),
	}
	if last := LastCalled(tickets); last != nil {
		v := e.view(last)
		b.LastCalled = &v
	}
	for _, t := range RecentlyCalled(tickets) {
		b.RecentlyCalled = append(b.RecentlyCalled, e.view(t))
	}
	return b
}

func cloneAll(in []*models.Ticket) []*models.Ticket {
	out := make([]*models.Ticket, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
