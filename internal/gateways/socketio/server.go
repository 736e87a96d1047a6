package socketio

import (
	"discord-backend/internal/observability"
	"discord-backend/internal/utils"

	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

const namespace = "/"

// Broadcaster is the part of the socket.io server the gateway fans out through.
type Broadcaster interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// Gateway relays chat events to socket.io clients that joined a "chat:<id>" room.
type Gateway struct {
	server *socketio.Server
	out    Broadcaster
	logger *zap.SugaredLogger
}

func NewGateway(logger *zap.Logger) *Gateway {
	server := socketio.NewServer(nil)
	g := &Gateway{server: server, out: server, logger: logger.Sugar()}

	server.OnConnect(namespace, func(s socketio.Conn) error {
		observability.IncRealtimeActive("socketio")
		g.logger.Debugw("Socket.io client connected", "sid", s.ID(), "remote", s.RemoteAddr().String())
		return nil
	})

	server.OnEvent(namespace, "join", func(s socketio.Conn, key string) {
		if _, ok := roomKey(key); !ok {
			s.Emit("error", "key must look like chat:<id>")
			return
		}
		s.Join(key)
		g.logger.Debugw("Socket.io client joined", "sid", s.ID(), "key", key)
	})

	server.OnEvent(namespace, "leave", func(s socketio.Conn, key string) {
		s.Leave(key)
	})

	server.OnError(namespace, func(s socketio.Conn, err error) {
		g.logger.Warnw("Socket.io error", "error", err)
	})

	server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		observability.DecRealtimeActive("socketio")
		g.logger.Debugw("Socket.io client disconnected", "sid", s.ID(), "reason", reason)
	})

	return g
}

func (g *Gateway) Server() *socketio.Server {
	return g.server
}

// HandleEvent is an event bus handler.
func (g *Gateway) HandleEvent(e utils.Event) {
	key, ok := roomKey(e.Event)
	if !ok {
		return
	}
	observability.IncRealtimeEvent("socketio", e.Event)
	g.out.BroadcastToRoom(namespace, key, e.Event, e.Data)
}

func (g *Gateway) Serve() {
	if err := g.server.Serve(); err != nil {
		g.logger.Errorw("Socket.io server stopped", "error", err)
	}
}

func (g *Gateway) Close() error {
	return g.server.Close()
}
