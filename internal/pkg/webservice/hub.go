package webservice

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

const (
	clientBuffer = 16
	writeWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// hub fans calculations out to websocket clients. A client that falls
// behind misses messages.
type hub struct {
	mux     *sync.Mutex
	clients map[uuid.UUID]chan []byte
}

func newHub() *hub {
	return &hub{
		mux:     &sync.Mutex{},
		clients: make(map[uuid.UUID]chan []byte),
	}
}

func (h *hub) register() (uuid.UUID, <-chan []byte) {
	h.mux.Lock()
	defer h.mux.Unlock()
	id := uuid.New()
	ch := make(chan []byte, clientBuffer)
	h.clients[id] = ch
	return id, ch
}

func (h *hub) unregister(id uuid.UUID) {
	h.mux.Lock()
	defer h.mux.Unlock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
	}
}

func (h *hub) broadcast(c toolkit.Calculation) {
	data, err := json.Marshal(c)
	if err != nil {
		log.Println("[Webservice] malformed JSON:", err)
		return
	}
	h.mux.Lock()
	defer h.mux.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- data:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mux.Lock()
	defer h.mux.Unlock()
	for id, ch := range h.clients {
		delete(h.clients, id)
		close(ch)
	}
}

func (h *hub) len() int {
	h.mux.Lock()
	defer h.mux.Unlock()
	return len(h.clients)
}

// serveWS registers the client before the handshake completes, so a
// connected client sees every later calculation.
func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	id, feed := h.register()
	defer h.unregister(id)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Webservice] websocket upgrade:", err)
		return
	}
	defer conn.Close()

	// the client never sends; reading detects the close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data, ok := <-feed:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
