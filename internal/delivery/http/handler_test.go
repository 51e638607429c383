package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/internal/service"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type envelope struct {
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (http.Handler, *queue.Engine) {
	t.Helper()
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	_, err := e.AddDepartment(context.Background(), models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)

	h := NewHTTPHandler(service.NewQueueService(e, l), nil, l)
	return NewRouter(h, RouterConfig{}, l), e
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestTicketFlow(t *testing.T) {
	h, _ := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/v1/tickets", map[string]any{"department_id": "cxa"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var issued models.TicketView
	require.NoError(t, json.Unmarshal(env.Data, &issued))
	assert.Equal(t, "CXA-001", issued.Number)
	assert.Equal(t, "Caixa", issued.DepartmentName)

	rec, env = do(t, h, http.MethodGet, "/api/v1/tickets/waiting?department_id=cxa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var waiting []models.TicketView
	require.NoError(t, json.Unmarshal(env.Data, &waiting))
	assert.Len(t, waiting, 1)

	rec, env = do(t, h, http.MethodPost, "/api/v1/counters/05/call", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var called models.TicketView
	require.NoError(t, json.Unmarshal(env.Data, &called))
	assert.Equal(t, issued.ID, called.ID)
	assert.Equal(t, "05", called.Counter)

	rec, env = do(t, h, http.MethodPost, "/api/v1/tickets/"+issued.ID+"/recall", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out service.TransitionOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Applied)

	rec, env = do(t, h, http.MethodGet, "/api/v1/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var board models.Board
	require.NoError(t, json.Unmarshal(env.Data, &board))
	require.NotNil(t, board.LastCalled)
	assert.Equal(t, issued.ID, board.LastCalled.ID)

	rec, env = do(t, h, http.MethodPost, "/api/v1/tickets/"+issued.ID+"/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Applied)
	assert.Equal(t, models.TicketStatusFinished, out.Ticket.Status)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/tickets/"+issued.ID+"/recall", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/tickets", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCallNextWithNothingWaiting(t *testing.T) {
	h, _ := newTestRouter(t)

	rec, _ := do(t, h, http.MethodPost, "/api/v1/counters/01/call", map[string]any{"department_id": "cxa"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestCallNextRespectsDepartment(t *testing.T) {
	h, e := newTestRouter(t)
	ctx := context.Background()
	_, err := e.AddDepartment(ctx, models.Department{ID: "inf", Name: "Informações", Prefix: "INF"})
	require.NoError(t, err)
	_, err = e.GenerateTicket(ctx, queue.TicketRequest{DepartmentID: "cxa"})
	require.NoError(t, err)

	rec, _ := do(t, h, http.MethodPost, "/api/v1/counters/01/call?department_id=inf", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, e.WaitingCount())
}

func TestErrorMapping(t *testing.T) {
	h, _ := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/v1/tickets", map[string]any{"department_id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BRQ001", env.ErrorCode)

	rec, env = do(t, h, http.MethodPost, "/api/v1/tickets", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BRQ002", env.ErrorCode)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	h.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	rec, env = do(t, h, http.MethodPost, "/api/v1/departments", map[string]any{"id": "cxa", "name": "Again", "prefix": "CXB"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "BRQ004", env.ErrorCode)

	rec, env = do(t, h, http.MethodDelete, "/api/v1/playlist/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BRQ007", env.ErrorCode)
}

func TestAdministration(t *testing.T) {
	h, e := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/api/v1/departments", map[string]any{"name": "Atendimento", "prefix": "atd"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var d models.Department
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "ATD", d.Prefix)
	assert.NotEmpty(t, d.ID)

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/departments/"+d.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, h, http.MethodDelete, "/api/v1/departments/"+d.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/api/v1/playlist", map[string]any{
		"type": "IMAGE", "url": "https://example.com/a.png", "title": "Promo", "duration": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var m models.MarketingMedia
	require.NoError(t, json.Unmarshal(env.Data, &m))
	require.Len(t, e.Playlist(), 1)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/playlist", map[string]any{
		"type": "IMAGE", "url": "https://example.com/b.png", "duration": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/playlist/"+m.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, e.Playlist())
}

func TestHealthAndCORS(t *testing.T) {
	l := logger.InitializeTestZapLogger()
	e := queue.NewEngine(l)
	h := NewRouter(NewHTTPHandler(service.NewQueueService(e, l), nil, l), RouterConfig{
		AllowedOrigins: []string{"http://display.local"},
	}, l)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://display.local")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://display.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Body.String(), "healthy")
}
