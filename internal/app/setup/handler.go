package setup

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Resolve(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Resolve the landing server
// @Description First server the caller belongs to, or a prompt to create one
// @Tags Setup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Result
// @Failure 401 {object} ErrorResponse
// @Router /api/setup [get]
func (h *handler) Resolve(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	res, err := h.service.Resolve(c.Request.Context(), actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
