package registry

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/matchroom-backend/internal/metrics"
)

// Conn is the subset of connection capabilities the registry needs. The
// websocket transport's connection satisfies it.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type client struct {
	conn Conn

	// writeMu serializes writes: broadcasts and per-match notifications may
	// target the same connection from different goroutines.
	writeMu sync.Mutex
}

// Registry maps an opaque client identifier to its outbound connection.
// Entries exist only for the lifetime of a connection.
type Registry struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	clients map[string]*client
}

func New(logger *slog.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		logger:  logger.With("component", "registry"),
		metrics: m,
		clients: make(map[string]*client),
	}
}

// Register stores the connection under a fresh identifier and returns it.
func (that *Registry) Register(conn Conn) string {
	clientID := uuid.NewString()

	that.mu.Lock()
	that.clients[clientID] = &client{conn: conn}
	that.mu.Unlock()

	that.metrics.ConnectedClients.Inc()
	that.logger.Info("client registered", "clientID", clientID)

	return clientID
}

func (that *Registry) Unregister(clientID string) {
	that.mu.Lock()
	_, ok := that.clients[clientID]
	delete(that.clients, clientID)
	that.mu.Unlock()

	if !ok {
		return
	}

	that.metrics.ConnectedClients.Dec()
	that.logger.Info("client unregistered", "clientID", clientID)
}

// Send delivers a payload to one client. An unknown identifier or a failed
// write is logged and swallowed: delivery is best effort and a race with a
// disconnect must never reach the caller's control flow.
func (that *Registry) Send(clientID string, payload any) {
	that.mu.RLock()
	target, ok := that.clients[clientID]
	that.mu.RUnlock()

	if !ok {
		that.logger.Warn("send to unknown client", "clientID", clientID)
		return
	}

	target.writeMu.Lock()
	err := target.conn.WriteJSON(payload)
	target.writeMu.Unlock()

	if err != nil {
		that.logger.Warn("failed to send to client", "clientID", clientID, "error", err)
	}
}

// Broadcast sends the payload to every registered client.
func (that *Registry) Broadcast(payload any) {
	that.mu.RLock()
	targets := make(map[string]*client, len(that.clients))
	for clientID, target := range that.clients {
		targets[clientID] = target
	}
	that.mu.RUnlock()

	for clientID, target := range targets {
		target.writeMu.Lock()
		err := target.conn.WriteJSON(payload)
		target.writeMu.Unlock()

		if err != nil {
			that.logger.Warn("failed to broadcast to client", "clientID", clientID, "error", err)
		}
	}
}

func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}
