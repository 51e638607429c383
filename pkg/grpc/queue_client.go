package grpc

import (
	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type cleanupFunc func()

// NewQueueClient dials a branch queue server. Every call uses the JSON codec.
func NewQueueClient(addr string) (queuerpc.QueueServiceClient, cleanupFunc, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(queuerpc.CallOption()),
	)
	if err != nil {
		return nil, nil, err
	}

	return queuerpc.NewQueueServiceClient(conn), func() { _ = conn.Close() }, nil
}
