package models

import "time"

type Ticket struct {
	ID           string       `json:"id"`
	DepartmentID string       `json:"department_id"`
	Number       string       `json:"number"`
	Status       TicketStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	CalledAt     *time.Time   `json:"called_at,omitempty"`
	Counter      string       `json:"counter,omitempty"`
	IsPriority   bool         `json:"is_priority"`
	SubCategory  string       `json:"sub_category,omitempty"`
	CustomerID   string       `json:"customer_id,omitempty"`
}

type TicketStatus string

const (
	TicketStatusWaiting  TicketStatus = "WAITING"
	TicketStatusCalled   TicketStatus = "CALLED"
	TicketStatusFinished TicketStatus = "FINISHED"
	TicketStatusCanceled TicketStatus = "CANCELED"
)

func (t *Ticket) IsWaiting() bool {
	return t.Status == TicketStatusWaiting
}

func (t *Ticket) IsCalled() bool {
	return t.Status == TicketStatusCalled
}

// IsTerminal reports whether the ticket can no longer change.
func (t *Ticket) IsTerminal() bool {
	return t.Status == TicketStatusFinished || t.Status == TicketStatusCanceled
}

// Clone returns a deep copy so callers never alias registry state.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	c := *t
	if t.CalledAt != nil {
		at := *t.CalledAt
		c.CalledAt = &at
	}
	return &c
}

// TicketView is a ticket enriched for front-ends.
type TicketView struct {
	*Ticket
	DepartmentName string `json:"department_name"`
}
