package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

func newTestService(t *testing.T) (QueueService, *queue.Engine) {
	t.Helper()
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	svc := NewQueueService(e, l)

	_, err := svc.AddDepartment(context.Background(), AddDepartmentInput{
		ID:            "cxa",
		Name:          "Caixa",
		Prefix:        "CXA",
		SubCategories: []string{"Pagamentos", "Saques"},
	})
	require.NoError(t, err)
	return svc, e
}

func TestIssueTicketEnrichesDepartmentName(t *testing.T) {
	svc, _ := newTestService(t)

	v, err := svc.IssueTicket(context.Background(), IssueTicketInput{DepartmentID: "cxa", SubCategory: "Saques"})
	require.NoError(t, err)
	assert.Equal(t, "CXA-001", v.Number)
	assert.Equal(t, "Caixa", v.DepartmentName)
	assert.Equal(t, "Saques", v.SubCategory)
}

func TestIssueTicketErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.IssueTicket(ctx, IssueTicketInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IssueTicket(ctx, IssueTicketInput{DepartmentID: "missing"})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}

func TestCallNext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, ok, err := svc.CallNext(ctx, CallNextInput{Counter: "05"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.CallNext(ctx, CallNextInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	issued, err := svc.IssueTicket(ctx, IssueTicketInput{DepartmentID: "cxa"})
	require.NoError(t, err)
	v, ok, err := svc.CallNext(ctx, CallNextInput{Counter: "05"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, issued.ID, v.ID)
	assert.Equal(t, "05", v.Counter)
}

func TestRecallAndFinishOutputs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.False(t, svc.Recall(ctx, "missing").Applied)

	_, err := svc.IssueTicket(ctx, IssueTicketInput{DepartmentID: "cxa"})
	require.NoError(t, err)
	v, _, err := svc.CallNext(ctx, CallNextInput{Counter: "01"})
	require.NoError(t, err)

	out := svc.Recall(ctx, v.ID)
	require.True(t, out.Applied)
	assert.Equal(t, v.Number, out.Ticket.Number)

	out = svc.Finish(ctx, v.ID)
	require.True(t, out.Applied)
	assert.Equal(t, models.TicketStatusFinished, out.Ticket.Status)
	assert.False(t, svc.Finish(ctx, v.ID).Applied)
}

func TestAdministrationValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddDepartment(ctx, AddDepartmentInput{Name: "No prefix"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddDepartment(ctx, AddDepartmentInput{ID: "cxa", Name: "Again", Prefix: "CXB"})
	assert.ErrorIs(t, err, ErrDuplicateDepartment)

	_, err = svc.AddMedia(ctx, AddMediaInput{Type: "GIF", URL: "https://example.com/a.gif", Duration: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddMedia(ctx, AddMediaInput{Type: "IMAGE", URL: "https://example.com/a.png", Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	m, err := svc.AddMedia(ctx, AddMediaInput{Type: "VIDEO", URL: "https://example.com/a.mp4", Duration: 30})
	require.NoError(t, err)
	assert.Len(t, svc.ListPlaylist(ctx), 1)
	assert.True(t, svc.RemoveMedia(ctx, m.ID))

	assert.True(t, svc.RemoveDepartment(ctx, "cxa"))
	assert.Empty(t, svc.ListDepartments(ctx))
}

func TestListWaitingOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.IssueTicket(ctx, IssueTicketInput{DepartmentID: "cxa"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	p, err := svc.IssueTicket(ctx, IssueTicketInput{DepartmentID: "cxa", IsPriority: true})
	require.NoError(t, err)

	waiting := svc.ListWaiting(ctx, "")
	require.Len(t, waiting, 2)
	assert.Equal(t, p.ID, waiting[0].ID)
	assert.Len(t, svc.ListTickets(ctx), 2)
}

func TestWatchBoard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan models.Board, 8)
	errCh := make(chan error, 1)
	go func() { errCh <- svc.WatchBoard(ctx, updates) }()

	first := <-updates
	assert.Zero(t, first.WaitingCount)

	_, err := svc.IssueTicket(context.Background(), IssueTicketInput{DepartmentID: "cxa"})
	require.NoError(t, err)

	select {
	case b := <-updates:
		assert.Equal(t, 1, b.WaitingCount)
	case <-time.After(time.Second):
		t.Fatal("no board update")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
}
