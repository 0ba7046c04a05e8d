package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/matchroom-backend/internal/entity"
	"github.com/rocketscienceinc/matchroom-backend/internal/registry"
)

type matchManager interface {
	CreateMatch(ctx context.Context, clientID string) (*entity.Game, error)
	JoinMatch(ctx context.Context, gameID, clientID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID, clientID string, cell int) (*entity.Game, error)
	ListOpenMatches(ctx context.Context) ([]string, error)
}

type Server struct {
	logger  *slog.Logger
	manager matchManager
	clients *registry.Registry

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, clientID string, msg *Message)
}

func New(logger *slog.Logger, manager matchManager, clients *registry.Registry) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		clients: clients,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, string, *Message)),
	}

	server.handlers[MethodCreate] = server.handleCreate
	server.handlers[MethodJoin] = server.handleJoin
	server.handlers[MethodMakeMove] = server.handleMakeMove

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.ServeWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS upgrades the connection, registers the client and runs its read
// loop until the connection drops.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := req.Context()

	clientID := that.clients.Register(conn)
	defer func() {
		that.clients.Unregister(clientID)
		// A match whose creator just left may still be listed as open; join
		// will surface a delivery error instead of crashing.
		that.notifyOpenMatches(ctx)
	}()

	that.clients.Send(clientID, Message{Method: MethodConnect, ClientID: clientID})
	that.notifyOpenMatches(ctx)

	that.readLoop(ctx, clientID, conn)
}

// readLoop - processes messages from the client. Malformed envelopes and
// unknown methods are protocol errors: logged, dropped, connection kept open.
func (that *Server) readLoop(ctx context.Context, clientID string, conn *websocket.Conn) {
	log := that.logger.With("method", "readLoop", "clientID", clientID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[msg.Method]
		if !ok {
			log.Error("unknown method", "name", msg.Method)
			continue
		}

		handler(ctx, clientID, &msg)
	}
}
