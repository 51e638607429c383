package models

import "time"

type ChangeType string

const (
	ChangeTicketIssued      ChangeType = "ticket_issued"
	ChangeTicketCalled      ChangeType = "ticket_called"
	ChangeTicketRecalled    ChangeType = "ticket_recalled"
	ChangeTicketFinished    ChangeType = "ticket_finished"
	ChangeDepartmentAdded   ChangeType = "department_added"
	ChangeDepartmentRemoved ChangeType = "department_removed"
	ChangeMediaAdded        ChangeType = "media_added"
	ChangeMediaRemoved      ChangeType = "media_removed"
)

// IsTicketChange reports whether the change touched a ticket.
func (c ChangeType) IsTicketChange() bool {
	switch c {
	case ChangeTicketIssued, ChangeTicketCalled, ChangeTicketRecalled, ChangeTicketFinished:
		return true
	}
	return false
}

func (c ChangeType) IsMediaChange() bool {
	return c == ChangeMediaAdded || c == ChangeMediaRemoved
}

// StateChange is emitted once per committed queue mutation.
type StateChange struct {
	Revision     uint64     `json:"revision"`
	Type         ChangeType `json:"type"`
	Ticket       *Ticket    `json:"ticket,omitempty"`
	DepartmentID string     `json:"department_id,omitempty"`
	MediaID      string     `json:"media_id,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}
