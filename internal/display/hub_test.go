package display

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/branchqueue/internal/announce"
	"github.com/vogiaan1904/branchqueue/internal/models"
	"github.com/vogiaan1904/branchqueue/internal/queue"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(logger.InitializeTestZapLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func recvType(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case data := <-ch:
		var m Message
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, _ := startHub(t)
	client := &Client{id: "c1", hub: hub, send: make(chan []byte, 4)}

	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
}

func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub(logger.InitializeTestZapLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := &Client{id: "late", hub: hub, send: make(chan []byte, 1)}
	done := make(chan bool, 1)
	go func() {
		registered := hub.Register(client)
		hub.Unregister(client)
		done <- registered
	}()

	select {
	case registered := <-done:
		assert.False(t, registered)
	case <-time.After(time.Second):
		t.Fatal("client blocked on a stopped hub")
	}
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub, _ := startHub(t)
	c1 := &Client{id: "c1", hub: hub, send: make(chan []byte, 4)}
	c2 := &Client{id: "c2", hub: hub, send: make(chan []byte, 4)}
	require.True(t, hub.Register(c1))
	require.True(t, hub.Register(c2))

	hub.NotifyFlash(true)

	for _, c := range []*Client{c1, c2} {
		m := recvType(t, c.send)
		assert.Equal(t, MessageFlash, m.Type)
	}
}

func TestNewClientGetsSnapshots(t *testing.T) {
	hub, _ := startHub(t)
	hub.NotifyAnnouncement(announce.Announcement{Kind: announce.KindNewCall, Text: "Ticket CXA-001, Counter 05"})
	hub.PublishBoard(models.Board{WaitingCount: 3, Revision: 7})
	hub.Render(models.MarketingMedia{ID: "m1", Type: models.MediaTypeImage, URL: "a.png", Duration: 10})

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.snapshots[MessageMedia]
		return ok
	}, time.Second, 5*time.Millisecond)

	late := &Client{id: "late", hub: hub, send: make(chan []byte, 8)}
	require.True(t, hub.Register(late))

	assert.Equal(t, MessageBoard, recvType(t, late.send).Type)
	assert.Equal(t, MessageMedia, recvType(t, late.send).Type)
	select {
	case data := <-late.send:
		t.Fatalf("announcements must not be replayed: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub, _ := startHub(t)
	slow := &Client{id: "slow", hub: hub, send: make(chan []byte, 1)}
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.NotifyFlash(true)
	hub.NotifyFlash(false)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWebsocketDisplayReceivesBoard(t *testing.T) {
	l := logger.InitializeTestZapLogger()
	hub, _ := startHub(t)
	e := queue.NewEngine(l)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := e.AddDepartment(ctx, models.Department{ID: "cxa", Name: "Caixa", Prefix: "CXA"})
	require.NoError(t, err)
	go RunBoard(ctx, hub, e)

	srv := httptest.NewServer(NewHandler(hub, DefaultClientConfig(), nil, l))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	_, err = e.GenerateTicket(ctx, queue.TicketRequest{DepartmentID: "cxa"})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var m struct {
			Type    MessageType  `json:"type"`
			Payload models.Board `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &m))
		if m.Type == MessageBoard && m.Payload.WaitingCount == 1 {
			return
		}
	}
}
