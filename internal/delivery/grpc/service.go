package grpc

import (
	"context"

	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
	resp "github.com/vogiaan1904/branchqueue/pkg/response"
)

type grpcService struct {
	svc service.QueueService
	l   logger.Logger
	queuerpc.UnimplementedQueueServiceServer
}

func NewGrpcService(svc service.QueueService, l logger.Logger) queuerpc.QueueServiceServer {
	return &grpcService{
		svc: svc,
		l:   l,
	}
}

func (s *grpcService) IssueTicket(ctx context.Context, req *queuerpc.IssueTicketRequest) (*queuerpc.IssueTicketResponse, error) {
	v, err := s.svc.IssueTicket(ctx, service.IssueTicketInput{
		DepartmentID: req.DepartmentID,
		IsPriority:   req.IsPriority,
		SubCategory:  req.SubCategory,
		CustomerID:   req.CustomerID,
	})
	if err != nil {
		s.l.Warnf(ctx, "Failed to issue ticket: %v", err)
		return nil, resp.ParseGRPCError(mapGRPCError(err))
	}

	return &queuerpc.IssueTicketResponse{Ticket: toTicket(v)}, nil
}

func (s *grpcService) CallNextTicket(ctx context.Context, req *queuerpc.CallNextTicketRequest) (*queuerpc.CallNextTicketResponse, error) {
	v, found, err := s.svc.CallNext(ctx, service.CallNextInput{
		Counter:      req.Counter,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		s.l.Warnf(ctx, "Failed to call next ticket: %v", err)
		return nil, resp.ParseGRPCError(mapGRPCError(err))
	}

	return &queuerpc.CallNextTicketResponse{
		Found:  found,
		Ticket: toTicket(v),
	}, nil
}

func (s *grpcService) RecallTicket(ctx context.Context, req *queuerpc.TicketRequest) (*queuerpc.TransitionResponse, error) {
	out := s.svc.Recall(ctx, req.TicketID)
	return &queuerpc.TransitionResponse{
		Applied: out.Applied,
		Ticket:  toTicket(out.Ticket),
	}, nil
}

func (s *grpcService) FinishTicket(ctx context.Context, req *queuerpc.TicketRequest) (*queuerpc.TransitionResponse, error) {
	out := s.svc.Finish(ctx, req.TicketID)
	return &queuerpc.TransitionResponse{
		Applied: out.Applied,
		Ticket:  toTicket(out.Ticket),
	}, nil
}

func (s *grpcService) GetBoard(ctx context.Context, _ *queuerpc.GetBoardRequest) (*queuerpc.Board, error) {
	return toBoard(s.svc.GetBoard(ctx)), nil
}

func (s *grpcService) ListDepartments(ctx context.Context, _ *queuerpc.ListDepartmentsRequest) (*queuerpc.ListDepartmentsResponse, error) {
	depts := s.svc.ListDepartments(ctx)
	out := &queuerpc.ListDepartmentsResponse{
		Departments: make([]*queuerpc.Department, 0, len(depts)),
	}
	for _, d := range depts {
		out.Departments = append(out.Departments, toDepartment(d))
	}
	return out, nil
}

func (s *grpcService) WatchBoard(_ *queuerpc.WatchBoardRequest, stream queuerpc.QueueService_WatchBoardServer) error {
	ctx := stream.Context()

	s.l.Info(ctx, "Starting board stream")

	upds := make(chan models.Board, 10)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.svc.WatchBoard(ctx, upds)
	}()

	for {
		select {
		case <-ctx.Done():
			s.l.Info(ctx, "Board stream cancelled by client")
			return ctx.Err()

		case err := <-errCh:
			if err != nil && ctx.Err() == nil {
				s.l.Error(ctx, "Board stream error", "error", err)
				return resp.ParseGRPCError(err)
			}
			return nil

		case b := <-upds:
			if err := stream.Send(toBoard(b)); err != nil {
				s.l.Error(ctx, "Failed to send board update", "error", err)
				return err
			}

			s.l.Debug(ctx, "Sent board update",
				"revision", b.Revision,
				"waiting_count", b.WaitingCount,
			)
		}
	}
}
