package channel

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	channels := rg.Group("/channels")
	{
		channels.POST("", handler.Create)
		channels.GET("/:channelId", handler.Get)
		channels.PATCH("/:channelId", handler.Update)
		channels.DELETE("/:channelId", handler.Delete)
	}
}
