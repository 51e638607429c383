package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpcSvc "github.com/vogiaan1904/branchqueue/internal/delivery/grpc"
	"github.com/vogiaan1904/branchqueue/internal/delivery/grpc/queuerpc"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func TestSimulatorDrivesQueue(t *testing.T) {
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	_, err := e.AddDepartment(context.Background(), models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	queuerpc.RegisterQueueServiceServer(srv, grpcSvc.NewGrpcService(service.NewQueueService(e, l), l))
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	sim := NewSimulator(queuerpc.NewQueueServiceClient(conn), Config{
		Counters:        2,
		ArrivalInterval: 5 * time.Millisecond,
		PriorityRatio:   0.5,
		RecallRatio:     1,
		ServiceTime:     4 * time.Millisecond,
		IdleBackoff:     2 * time.Millisecond,
		Duration:        300 * time.Millisecond,
	}, l)

	require.NoError(t, sim.Run(context.Background()))

	st := sim.Stats()
	assert.Positive(t, st.Issued.Load())
	assert.Positive(t, st.Called.Load())
	assert.LessOrEqual(t, st.Finished.Load(), st.Called.Load())
	assert.GreaterOrEqual(t, len(e.Tickets()), int(st.Issued.Load()))
}
