package registry

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/matchroom-backend/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	payloads []any
	closed   bool
}

func (that *fakeConn) WriteJSON(v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.payloads = append(that.payloads, v)

	return nil
}

func (that *fakeConn) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	return nil
}

func (that *fakeConn) received() []any {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]any(nil), that.payloads...)
}

func newTestRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, metrics.New())
}

func TestRegistry_Register(t *testing.T) {
	// Given: an empty registry
	reg := newTestRegistry()

	// When: two connections register
	firstID := reg.Register(&fakeConn{})
	secondID := reg.Register(&fakeConn{})

	// Then: both get distinct fresh identifiers
	require.NotEmpty(t, firstID)
	require.NotEmpty(t, secondID)
	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Unregister(t *testing.T) {
	reg := newTestRegistry()
	conn := &fakeConn{}
	clientID := reg.Register(conn)

	// When: the client unregisters
	reg.Unregister(clientID)

	// Then: it is gone and a later send is silently dropped
	assert.Equal(t, 0, reg.Len())
	reg.Send(clientID, "late message")
	assert.Empty(t, conn.received())

	// And: unregistering twice is harmless
	reg.Unregister(clientID)
}

func TestRegistry_Send(t *testing.T) {
	t.Run("Delivers to the addressed client only", func(t *testing.T) {
		reg := newTestRegistry()
		first := &fakeConn{}
		second := &fakeConn{}
		firstID := reg.Register(first)
		reg.Register(second)

		reg.Send(firstID, "hello")

		assert.Equal(t, []any{"hello"}, first.received())
		assert.Empty(t, second.received())
	})

	t.Run("Unknown identifier never reaches the caller", func(t *testing.T) {
		reg := newTestRegistry()

		// Races with disconnect are expected; Send must not panic or error
		reg.Send("no-such-client", "hello")
	})
}

func TestRegistry_Broadcast(t *testing.T) {
	// Given: three registered clients
	reg := newTestRegistry()
	conns := []*fakeConn{{}, {}, {}}
	for _, conn := range conns {
		reg.Register(conn)
	}

	// When: broadcasting a payload
	reg.Broadcast("all hands")

	// Then: every client received it exactly once
	for _, conn := range conns {
		assert.Equal(t, []any{"all hands"}, conn.received())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	// Register, send and unregister from many goroutines; the race detector
	// is the real assertion here.
	reg := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			clientID := reg.Register(&fakeConn{})
			reg.Send(clientID, "ping")
			reg.Broadcast("pong")
			reg.Unregister(clientID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
}
