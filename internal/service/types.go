package service

import (
	"time"

	"github.com/vogiaan1904/branchqueue/internal/models"
)

type IssueTicketInput struct {
	DepartmentID string `json:"department_id" validate:"required"`
	IsPriority   bool   `json:"is_priority"`
	SubCategory  string `json:"sub_category" validate:"max=64"`
	CustomerID   string `json:"customer_id" validate:"max=64"`
}

type CallNextInput struct {
	Counter      string `json:"counter" validate:"required,max=16"`
	DepartmentID string `json:"department_id"`
}

type AddDepartmentInput struct {
	ID            string   `json:"id" validate:"omitempty,max=64"`
	Name          string   `json:"name" validate:"required,max=128"`
	Prefix        string   `json:"prefix" validate:"required,alphanum,max=8"`
	Description   string   `json:"description" validate:"max=512"`
	SubCategories []string `json:"sub_categories" validate:"dive,required,max=64"`
}

type AddMediaInput struct {
	ID       string `json:"id" validate:"omitempty,max=64"`
	Type     string `json:"type" validate:"required,oneof=IMAGE VIDEO"`
	URL      string `json:"url" validate:"required,url"`
	Title    string `json:"title" validate:"max=256"`
	Duration int    `json:"duration" validate:"required,gt=0"`
}

// TransitionOutput reports whether a recall or finish changed anything.
type TransitionOutput struct {
	Applied bool               `json:"applied"`
	Ticket  *models.TicketView `json:"ticket,omitempty"`
}

type RelayStatus struct {
	IsRunning    bool      `json:"is_running"`
	StartedAt    time.Time `json:"started_at,omitempty"`
	LastRelayed  time.Time `json:"last_relayed,omitempty"`
	LastRevision uint64    `json:"last_revision"`
	TotalRelayed int64     `json:"total_relayed"`
	ErrorCount   int64     `json:"error_count"`
}
