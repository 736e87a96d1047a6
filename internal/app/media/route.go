package media

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, middlewares ...gin.HandlerFunc) {
	chain := append(middlewares, handler.Token)
	rg.GET("/livekit", chain...)
}
