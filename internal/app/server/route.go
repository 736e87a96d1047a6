package server

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	servers := rg.Group("/servers")
	{
		servers.POST("", handler.Create)
		servers.GET("", handler.List)
		servers.GET("/:serverId", handler.Get)
		servers.PATCH("/:serverId", handler.Update)
		servers.DELETE("/:serverId", handler.Delete)
		servers.PATCH("/:serverId/invite-code", handler.RegenerateInvite)
		servers.PATCH("/:serverId/leave", handler.Leave)
	}
	rg.POST("/invite/:inviteCode", handler.JoinByInvite)
}
