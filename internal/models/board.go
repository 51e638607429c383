package models

import "time"

// Board is the public display projection of the queue.
type Board struct {
	LastCalled     *TicketView  `json:"last_called,omitempty"`
	RecentlyCalled []TicketView `json:"recently_called"`
	WaitingCount   int          `json:"waiting_count"`
	Revision       uint64       `json:"revision"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
