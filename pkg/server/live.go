package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/gearrs/pkg/element"
)

// LivePath is where browsers connect for live reload.
const LivePath = "/_gearrs/live"

// LiveMessageType represents the type of live reload message.
type LiveMessageType string

const (
	LiveTypeReload LiveMessageType = "reload"
	LiveTypeError  LiveMessageType = "error"
)

// LiveMessage is sent to browsers via WebSocket.
type LiveMessage struct {
	Type  LiveMessageType `json:"type"`
	Error string          `json:"error,omitempty"`
}

// LiveReload manages WebSocket connections for live reload.
type LiveReload struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// onChange is called with the client count after it changes.
	onChange func(clients int)
}

// NewLiveReload creates a new live reload hub.
func NewLiveReload(logger *slog.Logger) *LiveReload {
	if logger == nil {
		logger = slog.Default().With("component", "live")
	}
	return &LiveReload{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview only
			},
		},
		logger: logger,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (l *LiveReload) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := l.upgrader.Upgrade(w, req, nil)
	if err != nil {
		l.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	l.mu.Lock()
	l.clients[conn] = true
	count := len(l.clients)
	l.mu.Unlock()
	l.changed(count)
	l.logger.Debug("live client connected", "clients", count)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	l.remove(conn)
}

// NotifyReload sends a full page reload message to all clients.
func (l *LiveReload) NotifyReload() {
	l.broadcast(LiveMessage{Type: LiveTypeReload})
}

// NotifyError sends an error message to all clients.
func (l *LiveReload) NotifyError(errMsg string) {
	l.broadcast(LiveMessage{Type: LiveTypeError, Error: errMsg})
}

// broadcast sends a message to all connected clients.
func (l *LiveReload) broadcast(msg LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	l.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(l.clients))
	for client := range l.clients {
		clients = append(clients, client)
	}
	l.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			l.logger.Debug("dropping live client", "error", err)
			l.remove(client)
		}
	}
}

func (l *LiveReload) remove(conn *websocket.Conn) {
	l.mu.Lock()
	_, ok := l.clients[conn]
	delete(l.clients, conn)
	count := len(l.clients)
	l.mu.Unlock()

	conn.Close()
	if ok {
		l.changed(count)
	}
}

func (l *LiveReload) changed(count int) {
	if l.onChange != nil {
		l.onChange(count)
	}
}

// ClientCount returns the number of connected clients.
func (l *LiveReload) ClientCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Close closes all client connections.
func (l *LiveReload) Close() {
	l.mu.Lock()
	for client := range l.clients {
		client.Close()
		delete(l.clients, client)
	}
	l.mu.Unlock()
	l.changed(0)
}

// LiveScript returns the <script> element that connects a page to LivePath
// and reloads it on request.
func LiveScript() *element.Element {
	return element.New("script", true).AddValue(liveClientJS)
}

const liveClientJS = `(function() {
    var delay = 1000;
    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + LivePath + `');
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'reload') { location.reload(); }
            if (msg.type === 'error') { console.error('[gearrs]', msg.error); }
        };
        ws.onclose = function() {
            setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
        };
    }
    connect();
})();`
