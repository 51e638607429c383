package queuerpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "branchqueue.v1.QueueService"

	QueueService_IssueTicket_FullMethodName     = "/branchqueue.v1.QueueService/IssueTicket"
	QueueService_CallNextTicket_FullMethodName  = "/branchqueue.v1.QueueService/CallNextTicket"
	QueueService_RecallTicket_FullMethodName    = "/branchqueue.v1.QueueService/RecallTicket"
	QueueService_FinishTicket_FullMethodName    = "/branchqueue.v1.QueueService/FinishTicket"
	QueueService_GetBoard_FullMethodName        = "/branchqueue.v1.QueueService/GetBoard"
	QueueService_ListDepartments_FullMethodName = "/branchqueue.v1.QueueService/ListDepartments"
	QueueService_WatchBoard_FullMethodName      = "/branchqueue.v1.QueueService/WatchBoard"
)

type QueueServiceServer interface {
	IssueTicket(context.Context, *IssueTicketRequest) (*IssueTicketResponse, error)
	CallNextTicket(context.Context, *CallNextTicketRequest) (*CallNextTicketResponse, error)
	RecallTicket(context.Context, *TicketRequest) (*TransitionResponse, error)
	FinishTicket(context.Context, *TicketRequest) (*TransitionResponse, error)
	GetBoard(context.Context, *GetBoardRequest) (*Board, error)
	ListDepartments(context.Context, *ListDepartmentsRequest) (*ListDepartmentsResponse, error)
	WatchBoard(*WatchBoardRequest, QueueService_WatchBoardServer) error
}

type QueueService_WatchBoardServer interface {
	Send(*Board) error
	grpc.ServerStream
}

// UnimplementedQueueServiceServer can be embedded for forward compatibility.
type UnimplementedQueueServiceServer struct{}

func (UnimplementedQueueServiceServer) IssueTicket(context.Context, *IssueTicketRequest) (*IssueTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IssueTicket not implemented")
}
func (UnimplementedQueueServiceServer) CallNextTicket(context.Context, *CallNextTicketRequest) (*CallNextTicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CallNextTicket not implemented")
}
func (UnimplementedQueueServiceServer) RecallTicket(context.Context, *TicketRequest) (*TransitionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RecallTicket not implemented")
}
func (UnimplementedQueueServiceServer) FinishTicket(context.Context, *TicketRequest) (*TransitionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FinishTicket not implemented")
}
func (UnimplementedQueueServiceServer) GetBoard(context.Context, *GetBoardRequest) (*Board, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBoard not implemented")
}
func (UnimplementedQueueServiceServer) ListDepartments(context.Context, *ListDepartmentsRequest) (*ListDepartmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDepartments not implemented")
}
func (UnimplementedQueueServiceServer) WatchBoard(*WatchBoardRequest, QueueService_WatchBoardServer) error {
	return status.Error(codes.Unimplemented, "method WatchBoard not implemented")
}

func RegisterQueueServiceServer(s grpc.ServiceRegistrar, srv QueueServiceServer) {
	s.RegisterService(&QueueService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc's method handler shape.
func unaryHandler[Req any, Resp any](
	method string,
	call func(QueueServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(QueueServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(QueueServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _QueueService_WatchBoard_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchBoardRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(QueueServiceServer).WatchBoard(m, &queueServiceWatchBoardServer{stream})
}

type queueServiceWatchBoardServer struct {
	grpc.ServerStream
}

func (x *queueServiceWatchBoardServer) Send(m *Board) error {
	return x.ServerStream.SendMsg(m)
}

var QueueService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*QueueServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "IssueTicket",
			Handler:    unaryHandler(QueueService_IssueTicket_FullMethodName, QueueServiceServer.IssueTicket),
		},
		{
			MethodName: "CallNextTicket",
			Handler:    unaryHandler(QueueService_CallNextTicket_FullMethodName, QueueServiceServer.CallNextTicket),
		},
		{
			MethodName: "RecallTicket",
			Handler:    unaryHandler(QueueService_RecallTicket_FullMethodName, QueueServiceServer.RecallTicket),
		},
		{
			MethodName: "FinishTicket",
			Handler:    unaryHandler(QueueService_FinishTicket_FullMethodName, QueueServiceServer.FinishTicket),
		},
		{
			MethodName: "GetBoard",
			Handler:    unaryHandler(QueueService_GetBoard_FullMethodName, QueueServiceServer.GetBoard),
		},
		{
			MethodName: "ListDepartments",
			Handler:    unaryHandler(QueueService_ListDepartments_FullMethodName, QueueServiceServer.ListDepartments),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchBoard",
			Handler:       _QueueService_WatchBoard_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "branchqueue/v1/queue.json",
}
