package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/particle"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// wsFrame is the wire format of one render tick on the particle feed.
type wsFrame struct {
	Particles []particle.Instance `json:"particles"`
	Snapshot  app.Snapshot        `json:"snapshot"`
	Status    app.Status          `json:"status"`
	Timestamp int64               `json:"timestamp"`
}

// ParticlesHandler broadcasts render-tick output to WebSocket clients.
// It implements app.FrameSink, so the render loop pushes frames here;
// the handler never pulls from the pipeline.
type ParticlesHandler struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

// NewParticlesHandler creates an empty hub.
func NewParticlesHandler() *ParticlesHandler {
	return &ParticlesHandler{
		clients: make(map[string]*websocket.Conn),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ParticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()

	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()

	log.Printf("particle feed client connected: %s", id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		log.Printf("particle feed client disconnected: %s", id)
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ParticlesHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishFrame implements app.FrameSink. The instances slice is only
// borrowed for this call, so marshaling happens before returning.
func (h *ParticlesHandler) PublishFrame(instances []particle.Instance, snap app.Snapshot, status app.Status) {
	h.mu.RLock()
	empty := len(h.clients) == 0
	h.mu.RUnlock()

	if empty {
		return
	}

	msg, err := json.Marshal(wsFrame{
		Particles: instances,
		Snapshot:  snap,
		Status:    status,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("write to client %s failed: %v", id, err)
		}
	}
}
