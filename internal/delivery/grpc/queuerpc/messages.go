package queuerpc

// Timestamps are ISO8601 strings in UTC; empty means unset.

type Ticket struct {
	ID             string `json:"id"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Number         string `json:"number"`
	Status         string `json:"status"`
	Counter        string `json:"counter,omitempty"`
	IsPriority     bool   `json:"is_priority"`
	SubCategory    string `json:"sub_category,omitempty"`
	CustomerID     string `json:"customer_id,omitempty"`
	CreatedAt      string `json:"created_at"`
	CalledAt       string `json:"called_at,omitempty"`
}

type Department struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Prefix        string   `json:"prefix"`
	Description   string   `json:"description,omitempty"`
	SubCategories []string `json:"sub_categories,omitempty"`
}

type Board struct {
	LastCalled     *Ticket   `json:"last_called,omitempty"`
	RecentlyCalled []*Ticket `json:"recently_called"`
	WaitingCount   int32     `json:"waiting_count"`
	Revision       uint64    `json:"revision"`
	UpdatedAt      string    `json:"updated_at"`
}

type IssueTicketRequest struct {
	DepartmentID string `json:"department_id"`
	IsPriority   bool   `json:"is_priority"`
	SubCategory  string `json:"sub_category,omitempty"`
	CustomerID   string `json:"customer_id,omitempty"`
}

type IssueTicketResponse struct {
	Ticket *Ticket `json:"ticket"`
}

type CallNextTicketRequest struct {
	Counter      string `json:"counter"`
	DepartmentID string `json:"department_id,omitempty"`
}

type CallNextTicketResponse struct {
	Found  bool    `json:"found"`
	Ticket *Ticket `json:"ticket,omitempty"`
}

// TicketRequest addresses an existing ticket for recall or finish.
type TicketRequest struct {
	TicketID string `json:"ticket_id"`
}

type TransitionResponse struct {
	Applied bool    `json:"applied"`
	Ticket  *Ticket `json:"ticket,omitempty"`
}

type GetBoardRequest struct{}

type ListDepartmentsRequest struct{}

type ListDepartmentsResponse struct {
	Departments []*Department `json:"departments"`
}

type WatchBoardRequest struct{}
