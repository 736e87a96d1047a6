package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetCurrent(c *gin.Context)
}

type handler struct{}

func NewHandler() Handler {
	return &handler{}
}

// @Summary Current profile
// @Description Profile of the authenticated caller, created on first request
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Profile
// @Failure 401 {object} ErrorResponse
// @Router /api/profile [get]
func (h *handler) GetCurrent(c *gin.Context) {
	p, ok := FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, p)
}
