package display

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type Handler struct {
	hub      *Hub
	cfg      ClientConfig
	upgrader websocket.Upgrader
	l        logger.Logger
}

// NewHandler upgrades display connections. An empty allowedOrigins
// accepts every origin.
func NewHandler(hub *Hub, cfg ClientConfig, allowedOrigins []string, l logger.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 || allowed["*"] {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
		l: l,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.l.Errorf(r.Context(), "display.Handler.ServeHTTP: upgrade: %v", err)
		return
	}

	client := NewClient(h.hub, conn, h.cfg, h.l)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}
	client.Start()
}
