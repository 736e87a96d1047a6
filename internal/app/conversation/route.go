package conversation

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.POST("/conversations", handler.Start)
	rg.GET("/direct-messages", handler.ListMessages)

	socket := rg.Group("/socket/direct-messages")
	{
		socket.POST("", handler.CreateMessage)
		socket.PATCH("/:directMessageId", handler.UpdateMessage)
		socket.DELETE("/:directMessageId", handler.DeleteMessage)
	}
}
