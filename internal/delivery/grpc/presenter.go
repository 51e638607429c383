package grpc

import (
	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/pkg/util"
)

func toTicket(v *models.TicketView) *queuerpc.Ticket {
	if v == nil || v.Ticket == nil {
		return nil
	}
	return &queuerpc.Ticket{
		ID:             v.ID,
		DepartmentID:   v.DepartmentID,
		DepartmentName: v.DepartmentName,
		Number:         v.Number,
		Status:         string(v.Status),
		Counter:        v.Counter,
		IsPriority:     v.IsPriority,
		SubCategory:    v.SubCategory,
		CustomerID:     v.CustomerID,
		CreatedAt:      util.TimeToISO8601Str(v.CreatedAt),
		CalledAt:       util.TimePtrToISO8601Str(v.CalledAt),
	}
}

func toBoard(b models.Board) *queuerpc.Board {
	out := &queuerpc.Board{
		LastCalled:     toTicket(b.LastCalled),
		RecentlyCalled: make([]*queuerpc.Ticket, 0, len(b.RecentlyCalled)),
		WaitingCount:   int32(b.WaitingCount),
		Revision:       b.Revision,
		UpdatedAt:      util.TimeToISO8601Str(b.UpdatedAt),
	}
	for i := range b.RecentlyCalled {
		out.RecentlyCalled = append(out.RecentlyCalled, toTicket(&b.RecentlyCalled[i]))
	}
	return out
}

func toDepartment(d models.Department) *queuerpc.Department {
	return &queuerpc.Department{
		ID:            d.ID,
		Name:          d.Name,
		Prefix:        d.Prefix,
		Description:   d.Description,
		SubCategories: d.SubCategories,
	}
}
