package member

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	members := rg.Group("/members")
	{
		members.GET("", handler.List)
		members.PATCH("/:memberId", handler.UpdateRole)
		members.DELETE("/:memberId", handler.Kick)
	}
}
