package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"discord-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errors.New("closed")
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.written...)
}

func TestRoomKey(t *testing.T) {
	key, ok := RoomKey("chat:abc:messages")
	assert.True(t, ok)
	assert.Equal(t, "chat:abc", key)

	key, ok = RoomKey("chat:abc:messages:update")
	assert.True(t, ok)
	assert.Equal(t, "chat:abc", key)

	_, ok = RoomKey("server_created")
	assert.False(t, ok)

	_, ok = RoomKey("chat::messages")
	assert.False(t, ok)
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func connect(hub *Hub, key string) (*Client, *fakeConn) {
	conn := newFakeConn()
	client := NewClient(hub, conn, key)
	hub.Register(client)
	go client.writePump()
	go client.readPump()
	return client, conn
}

func TestHubDeliversOnlyToMatchingRoom(t *testing.T) {
	hub, _ := startHub(t)

	_, inRoom := connect(hub, "chat:c1")
	_, elsewhere := connect(hub, "chat:c2")
	require.Eventually(t, func() bool { return hub.Size("chat:c1") == 1 && hub.Size("chat:c2") == 1 },
		time.Second, 5*time.Millisecond)

	hub.HandleEvent(utils.Event{Event: "chat:c1:messages:update", Data: map[string]string{"id": "m1"}})

	require.Eventually(t, func() bool { return len(inRoom.messages()) == 1 }, time.Second, 5*time.Millisecond)

	var got utils.Event
	require.NoError(t, json.Unmarshal(inRoom.messages()[0], &got))
	assert.Equal(t, "chat:c1:messages:update", got.Event)
	assert.Empty(t, elsewhere.messages())
}

func TestHubIgnoresForeignEvents(t *testing.T) {
	hub, _ := startHub(t)
	_, conn := connect(hub, "chat:c1")
	require.Eventually(t, func() bool { return hub.Size("chat:c1") == 1 }, time.Second, 5*time.Millisecond)

	hub.HandleEvent(utils.Event{Event: "member_kicked"})
	hub.HandleEvent(utils.Event{Event: "chat:c1:messages"})

	require.Eventually(t, func() bool { return len(conn.messages()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, _ := startHub(t)
	_, conn := connect(hub, "chat:c1")
	require.Eventually(t, func() bool { return hub.Size("chat:c1") == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.Size("chat:c1") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	hub, cancel := startHub(t)
	_, conn := connect(hub, "chat:c1")
	require.Eventually(t, func() bool { return hub.Size("chat:c1") == 1 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-conn.closed:
	case <-time.After(time.Second):
		t.Fatal("connection was not closed on shutdown")
	}
	assert.False(t, hub.Register(NewClient(hub, newFakeConn(), "chat:c1")))
}
