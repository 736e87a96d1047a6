package websocket

import (
	"net/http"
	"strings"

	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Upgrader struct {
	websocket.Upgrader
}

// NewUpgrader accepts only the given origins. An empty list accepts any origin.
func NewUpgrader(allowedOrigins []string) *Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return &Upgrader{websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}}
}

// ServeWS upgrades the request and subscribes the connection to the chat key in ?key=.
func (h *Hub) ServeWS(upgrader *Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Query("key")
		if _, ok := RoomKey(key + ":messages"); !ok {
			h.logger.Warnw("WebSocket connection rejected: bad key",
				"key", key,
				"client_ip", c.ClientIP(),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "key must look like chat:<id>"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Errorw("Failed to upgrade connection", "key", key, "error", err)
			return
		}

		client := NewClient(h, conn, key)

		fields := []interface{}{
			"client_id", client.ID,
			"key", key,
			"client_ip", c.ClientIP(),
			"user_agent", c.GetHeader("User-Agent"),
		}
		if p, ok := profile.FromContext(c); ok {
			fields = append(fields, "profile_id", p.ID)
		}
		h.logger.Infow("WebSocket connection established", fields...)

		if !h.Register(client) {
			conn.Close()
			return
		}
		go client.writePump()
		client.readPump()
	}
}
