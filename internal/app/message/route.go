package message

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/messages", handler.List)

	socket := rg.Group("/socket/messages")
	{
		socket.POST("", handler.Create)
		socket.PATCH("/:messageId", handler.Update)
		socket.DELETE("/:messageId", handler.Delete)
	}
}
