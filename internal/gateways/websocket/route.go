package websocket

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, hub *Hub, upgrader *Upgrader) {
	rg.GET("/ws", hub.ServeWS(upgrader))
}
