package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

// Engine is the subset of queue.Engine the service depends on.
type Engine interface {
	GenerateTicket(ctx context.Context, req queue.TicketRequest) (*models.Ticket, error)
	CallNextTicket(ctx context.Context, counter, departmentID string) (*models.Ticket, bool)
	RecallTicket(ctx context.Context, id string) (*models.Ticket, bool)
	FinishTicket(ctx context.Context, id string) (*models.Ticket, bool)
	AddDepartment(ctx context.Context, d models.Department) (models.Department, error)
	RemoveDepartment(ctx context.Context, id string) bool
	AddMedia(ctx context.Context, m models.MarketingMedia) (models.MarketingMedia, error)
	RemoveMedia(ctx context.Context, id string) bool

	Departments() []models.Department
	Tickets() []*models.Ticket
	WaitingTickets(departmentID string) []*models.Ticket
	Playlist() []models.MarketingMedia
	Board() models.Board
	View(t *models.Ticket) models.TicketView
	Subscribe(name string, buffer int) *queue.Subscription
}

type QueueService interface {
	IssueTicket(ctx context.Context, in IssueTicketInput) (*models.TicketView, error)
	CallNext(ctx context.Context, in CallNextInput) (*models.TicketView, bool, error)
	Recall(ctx context.Context, ticketID string) TransitionOutput
	Finish(ctx context.Context, ticketID string) TransitionOutput

	GetBoard(ctx context.Context) models.Board
	ListTickets(ctx context.Context) []models.TicketView
	ListWaiting(ctx context.Context, departmentID string) []models.TicketView
	WatchBoard(ctx context.Context, updates chan<- models.Board) error

	ListDepartments(ctx context.Context) []models.Department
	AddDepartment(ctx context.Context, in AddDepartmentInput) (*models.Department, error)
	RemoveDepartment(ctx context.Context, id string) bool
	ListPlaylist(ctx context.Context) []models.MarketingMedia
	AddMedia(ctx context.Context, in AddMediaInput) (*models.MarketingMedia, error)
	RemoveMedia(ctx context.Context, id string) bool
}

type queueService struct {
	e        Engine
	validate *validator.Validate
	l        logger.Logger
}

func NewQueueService(e Engine, l logger.Logger) QueueService {
	return &queueService{
		e:        e,
		validate: validator.New(),
		l:        l,
	}
}

func (s *queueService) validateInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *queueService) IssueTicket(ctx context.Context, in IssueTicketInput) (*models.TicketView, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	t, err := s.e.GenerateTicket(ctx, queue.TicketRequest{
		DepartmentID: in.DepartmentID,
		IsPriority:   in.IsPriority,
		SubCategory:  in.SubCategory,
		CustomerID:   in.CustomerID,
	})
	if err != nil {
		s.l.Warnf(ctx, "service.queueService.IssueTicket: %v", err)
		return nil, err
	}

	v := s.e.View(t)
	s.l.Info(ctx, "Ticket issued",
		"ticket_id", t.ID,
		"number", t.Number,
		"department_id", t.DepartmentID,
		"is_priority", t.IsPriority,
	)
	return &v, nil
}

func (s *queueService) CallNext(ctx context.Context, in CallNextInput) (*models.TicketView, bool, error) {
	if err := s.validateInput(in); err != nil {
		return nil, false, err
	}

	t, ok := s.e.CallNextTicket(ctx, in.Counter, in.DepartmentID)
	if !ok {
		s.l.Debug(ctx, "No ticket waiting", "counter", in.Counter, "department_id", in.DepartmentID)
		return nil, false, nil
	}

	v := s.e.View(t)
	s.l.Info(ctx, "Ticket called",
		"ticket_id", t.ID,
		"number", t.Number,
		"counter", t.Counter,
	)
	return &v, true, nil
}

func (s *queueService) Recall(ctx context.Context, ticketID string) TransitionOutput {
	return s.transitionOutput(s.e.RecallTicket(ctx, ticketID))
}

func (s *queueService) Finish(ctx context.Context, ticketID string) TransitionOutput {
	return s.transitionOutput(s.e.FinishTicket(ctx, ticketID))
}

func (s *queueService) transitionOutput(t *models.Ticket, ok bool) TransitionOutput {
	if !ok {
		return TransitionOutput{}
	}
	v := s.e.View(t)
	return TransitionOutput{Applied: true, Ticket: &v}
}

func (s *queueService) GetBoard(ctx context.Context) models.Board {
	return s.e.Board()
}

func (s *queueService) ListTickets(ctx context.Context) []models.TicketView {
	return s.views(s.e.Tickets())
}

func (s *queueService) ListWaiting(ctx context.Context, departmentID string) []models.TicketView {
	return s.views(s.e.WaitingTickets(departmentID))
}

func (s *queueService) views(tickets []*models.Ticket) []models.TicketView {
	out := make([]models.TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, s.e.View(t))
	}
	return out
}

// WatchBoard sends the current board, then a fresh one after every
// ticket or department change, until ctx is done.
func (s *queueService) WatchBoard(ctx context.Context, updates chan<- models.Board) error {
	sub := s.e.Subscribe("service.watch_board", 0)
	defer sub.Close()

	send := func() error {
		select {
		case updates <- s.e.Board():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := send(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-sub.Changes():
			if !ok {
				return nil
			}
			if c.Type.IsMediaChange() {
				continue
			}
			if err := send(); err != nil {
				return err
			}
		}
	}
}

func (s *queueService) ListDepartments(ctx context.Context) []models.Department {
	return s.e.Departments()
}

func (s *queueService) AddDepartment(ctx context.Context, in AddDepartmentInput) (*models.Department, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	d, err := s.e.AddDepartment(ctx, models.Department{
		ID:            in.ID,
		Name:          in.Name,
		Prefix:        in.Prefix,
		Description:   in.Description,
		SubCategories: in.SubCategories,
	})
	if err != nil {
		s.l.Warnf(ctx, "service.queueService.AddDepartment: %v", err)
		return nil, err
	}

	s.l.Info(ctx, "Department added", "department_id", d.ID, "prefix", d.Prefix)
	return &d, nil
}

func (s *queueService) RemoveDepartment(ctx context.Context, id string) bool {
	removed := s.e.RemoveDepartment(ctx, id)
	if removed {
		s.l.Info(ctx, "Department removed", "department_id", id)
	}
	return removed
}

func (s *queueService) ListPlaylist(ctx context.Context) []models.MarketingMedia {
	return s.e.Playlist()
}

func (s *queueService) AddMedia(ctx context.Context, in AddMediaInput) (*models.MarketingMedia, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	m, err := s.e.AddMedia(ctx, models.MarketingMedia{
		ID:       in.ID,
		Type:     models.MediaType(in.Type),
		URL:      in.URL,
		Title:    in.Title,
		Duration: in.Duration,
	})
	if err != nil {
		s.l.Warnf(ctx, "service.queueService.AddMedia: %v", err)
		return nil, err
	}

	s.l.Info(ctx, "Media added", "media_id", m.ID, "type", m.Type, "duration", m.Duration)
	return &m, nil
}

func (s *queueService) RemoveMedia(ctx context.Context, id string) bool {
	removed := s.e.RemoveMedia(ctx, id)
	if removed {
		s.l.Info(ctx, "Media removed", "media_id", id)
	}
	return removed
}
