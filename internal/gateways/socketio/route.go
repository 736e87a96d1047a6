package socketio

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRoutes, g *Gateway) {
	h := gin.WrapH(g.server)
	r.GET("/socket.io/*any", h)
	r.POST("/socket.io/*any", h)
}
