package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/vogiaan1904/branchqueue/internal/models"
)

// Registry owns departments, tickets and the media sequence. It is not
// safe for concurrent use; Engine serializes every access.
type Registry struct {
	departments []models.Department
	deptIndex   map[string]int

	tickets     []*models.Ticket
	ticketIndex map[string]int

	// issued counts every ticket ever created per department.
	issued map[string]int

	media []models.MarketingMedia
}

func NewRegistry() *Registry {
	return &Registry{
		deptIndex:   make(map[string]int),
		ticketIndex: make(map[string]int),
		issued:      make(map[string]int),
	}
}

func (r *Registry) AddDepartment(d models.Department) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Prefix = strings.ToUpper(strings.TrimSpace(d.Prefix))
	if d.ID == "" || d.Name == "" || d.Prefix == "" {
		return ErrInvalidDepartment
	}
	if _, ok := r.deptIndex[d.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDepartment, d.ID)
	}
	r.deptIndex[d.ID] = len(r.departments)
	r.departments = append(r.departments, d.Clone())
	return nil
}

// RemoveDepartment drops the department record only. Its tickets keep
// their departmentId.
func (r *Registry) RemoveDepartment(id string) bool {
	idx, ok := r.deptIndex[id]
	if !ok {
		return false
	}
	r.departments = append(r.departments[:idx], r.departments[idx+1:]...)
	r.reindexDepartments()
	return true
}

func (r *Registry) reindexDepartments() {
	r.deptIndex = make(map[string]int, len(r.departments))
	for i, d := range r.departments {
		r.deptIndex[d.ID] = i
	}
}

func (r *Registry) Department(id string) (models.Department, bool) {
	idx, ok := r.deptIndex[id]
	if !ok {
		return models.Department{}, false
	}
	return r.departments[idx], true
}

// DepartmentName resolves a name, returning "" for dangling references.
func (r *Registry) DepartmentName(id string) string {
	d, _ := r.Department(id)
	return d.Name
}

func (r *Registry) Departments() []models.Department {
	out := make([]models.Department, len(r.departments))
	for i, d := range r.departments {
		out[i] = d.Clone()
	}
	return out
}

// IssueTicket creates the next WAITING ticket for an existing department.
func (r *Registry) IssueTicket(id string, req TicketRequest, now time.Time) (*models.Ticket, error) {
	d, ok := r.Department(req.DepartmentID)
	if !ok {
		return nil, ErrDepartmentNotFound
	}

	r.issued[d.ID]++
	t := &models.Ticket{
		ID:           id,
		DepartmentID: d.ID,
		Number:       FormatNumber(d.Prefix, r.issued[d.ID]),
		Status:       models.TicketStatusWaiting,
		CreatedAt:    now,
		IsPriority:   req.IsPriority,
		SubCategory:  req.SubCategory,
		CustomerID:   req.CustomerID,
	}
	r.ticketIndex[t.ID] = len(r.tickets)
	r.tickets = append(r.tickets, t)
	return t, nil
}

// FormatNumber renders a ticket number such as CXA-007.
func FormatNumber(prefix string, ordinal int) string {
	return fmt.Sprintf("%s-%03d", prefix, ordinal)
}

func (r *Registry) Ticket(id string) (*models.Ticket, bool) {
	idx, ok := r.ticketIndex[id]
	if !ok {
		return nil, false
	}
	return r.tickets[idx], true
}

// Tickets returns the live ticket slice in creation order. Callers must
// not retain or mutate it outside the engine lock.
func (r *Registry) Tickets() []*models.Ticket {
	return r.tickets
}

// Apply performs action on t when the transition table allows it.
func (r *Registry) Apply(t *models.Ticket, action Action, counter string, now time.Time) bool {
	next, ok := ValidTransition(t.Status, action)
	if !ok {
		return false
	}

	switch action {
	case ActionCall:
		at := now
		t.CalledAt = &at
		t.Counter = counter
	case ActionRecall:
		at := now
		if t.CalledAt != nil && !now.After(*t.CalledAt) {
			at = t.CalledAt.Add(time.Nanosecond)
		}
		t.CalledAt = &at
	}
	t.Status = next
	return true
}

func (r *Registry) AddMedia(m models.MarketingMedia) error {
	if m.ID == "" || m.URL == "" || m.Duration <= 0 || !m.Type.Valid() {
		return ErrInvalidMedia
	}
	for _, existing := range r.media {
		if existing.ID == m.ID {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidMedia, m.ID)
		}
	}
	r.media = append(r.media, m)
	return nil
}

func (r *Registry) RemoveMedia(id string) bool {
	for i, m := range r.media {
		if m.ID == id {
			r.media = append(r.media[:i], r.media[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) Media() []models.MarketingMedia {
	return append([]models.MarketingMedia(nil), r.media...)
}
