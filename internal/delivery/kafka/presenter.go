package kafka

import "time"

// Events published BY the branch queue

type TicketEvent struct {
	Revision       uint64     `json:"revision"`
	BranchID       string     `json:"branch_id"`
	TicketID       string     `json:"ticket_id"`
	Number         string     `json:"number"`
	DepartmentID   string     `json:"department_id"`
	DepartmentName string     `json:"department_name,omitempty"`
	Status         string     `json:"status"`
	Counter        string     `json:"counter,omitempty"`
	IsPriority     bool       `json:"is_priority"`
	SubCategory    string     `json:"sub_category,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CalledAt       *time.Time `json:"called_at,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

// Commands consumed BY the branch queue (remote kiosks and counters)

type TicketRequestedEvent struct {
	DepartmentID string    `json:"department_id"`
	IsPriority   bool      `json:"is_priority"`
	SubCategory  string    `json:"sub_category,omitempty"`
	CustomerID   string    `json:"customer_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type CounterCallRequestedEvent struct {
	Counter      string    `json:"counter"`
	DepartmentID string    `json:"department_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type CounterTicketRequestedEvent struct {
	TicketID  string    `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
}
