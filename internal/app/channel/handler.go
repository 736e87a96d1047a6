package channel

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create a channel
// @Tags Channel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param serverId query string true "Server ID"
// @Param request body ChannelRequest true "Channel"
// @Success 201 {object} Channel
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/channels [post]
func (h *handler) Create(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ch, err := h.service.Create(c.Request.Context(), actor, c.Query("serverId"), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// @Summary Get a channel
// @Tags Channel
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "Channel ID"
// @Param serverId query string true "Server ID"
// @Success 200 {object} Channel
// @Failure 404 {object} ErrorResponse
// @Router /api/channels/{channelId} [get]
func (h *handler) Get(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ch, err := h.service.Get(c.Request.Context(), actor, c.Query("serverId"), c.Param("channelId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// @Summary Update a channel
// @Tags Channel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param channelId path string true "Channel ID"
// @Param serverId query string true "Server ID"
// @Param request body ChannelRequest true "Channel"
// @Success 200 {object} Channel
// @Router /api/channels/{channelId} [patch]
func (h *handler) Update(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ch, err := h.service.Update(c.Request.Context(), actor, c.Query("serverId"), c.Param("channelId"), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// @Summary Delete a channel
// @Tags Channel
// @Security BearerAuth
// @Param channelId path string true "Channel ID"
// @Param serverId query string true "Server ID"
// @Success 204
// @Router /api/channels/{channelId} [delete]
func (h *handler) Delete(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Query("serverId"), c.Param("channelId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
