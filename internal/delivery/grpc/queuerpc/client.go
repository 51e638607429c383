package queuerpc

import (
	"context"

	"google.golang.org/grpc"
)

type QueueServiceClient interface {
	IssueTicket(ctx context.Context, in *IssueTicketRequest, opts ...grpc.CallOption) (*IssueTicketResponse, error)
	CallNextTicket(ctx context.Context, in *CallNextTicketRequest, opts ...grpc.CallOption) (*CallNextTicketResponse, error)
	RecallTicket(ctx context.Context, in *TicketRequest, opts ...grpc.CallOption) (*TransitionResponse, error)
	FinishTicket(ctx context.Context, in *TicketRequest, opts ...grpc.CallOption) (*TransitionResponse, error)
	GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*Board, error)
	ListDepartments(ctx context.Context, in *ListDepartmentsRequest, opts ...grpc.CallOption) (*ListDepartmentsResponse, error)
	WatchBoard(ctx context.Context, in *WatchBoardRequest, opts ...grpc.CallOption) (QueueService_WatchBoardClient, error)
}

type QueueService_WatchBoardClient interface {
	Recv() (*Board, error)
	grpc.ClientStream
}

type queueServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewQueueServiceClient(cc grpc.ClientConnInterface) QueueServiceClient {
	return &queueServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queueServiceClient) IssueTicket(ctx context.Context, in *IssueTicketRequest, opts ...grpc.CallOption) (*IssueTicketResponse, error) {
	return invoke[IssueTicketResponse](ctx, c.cc, QueueService_IssueTicket_FullMethodName, in, opts)
}

func (c *queueServiceClient) CallNextTicket(ctx context.Context, in *CallNextTicketRequest, opts ...grpc.CallOption) (*CallNextTicketResponse, error) {
	return invoke[CallNextTicketResponse](ctx, c.cc, QueueService_CallNextTicket_FullMethodName, in, opts)
}

func (c *queueServiceClient) RecallTicket(ctx context.Context, in *TicketRequest, opts ...grpc.CallOption) (*TransitionResponse, error) {
	return invoke[TransitionResponse](ctx, c.cc, QueueService_RecallTicket_FullMethodName, in, opts)
}

func (c *queueServiceClient) FinishTicket(ctx context.Context, in *TicketRequest, opts ...grpc.CallOption) (*TransitionResponse, error) {
	return invoke[TransitionResponse](ctx, c.cc, QueueService_FinishTicket_FullMethodName, in, opts)
}

func (c *queueServiceClient) GetBoard(ctx context.Context, in *GetBoardRequest, opts ...grpc.CallOption) (*Board, error) {
	return invoke[Board](ctx, c.cc, QueueService_GetBoard_FullMethodName, in, opts)
}

func (c *queueServiceClient) ListDepartments(ctx context.Context, in *ListDepartmentsRequest, opts ...grpc.CallOption) (*ListDepartmentsResponse, error) {
	return invoke[ListDepartmentsResponse](ctx, c.cc, QueueService_ListDepartments_FullMethodName, in, opts)
}

func (c *queueServiceClient) WatchBoard(ctx context.Context, in *WatchBoardRequest, opts ...grpc.CallOption) (QueueService_WatchBoardClient, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &QueueService_ServiceDesc.Streams[0], QueueService_WatchBoard_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &queueServiceWatchBoardClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type queueServiceWatchBoardClient struct {
	grpc.ClientStream
}

func (x *queueServiceWatchBoardClient) Recv() (*Board, error) {
	m := new(Board)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
