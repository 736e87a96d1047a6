package message

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func target(c *gin.Context) Target {
	return Target{
		ServerID:  c.Query("serverId"),
		ChannelID: c.Query("channelId"),
		MessageID: c.Param("messageId"),
	}
}

// @Summary List channel messages
// @Description Newest first, 10 per page. Pass nextCursor back as cursor for older messages.
// @Tags Message
// @Produce json
// @Security BearerAuth
// @Param serverId query string true "Server ID"
// @Param channelId query string true "Channel ID"
// @Param cursor query string false "Cursor"
// @Success 200 {object} MessagePage
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/messages [get]
func (h *handler) List(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	page, err := h.service.List(c.Request.Context(), actor, c.Query("serverId"), c.Query("channelId"), c.Query("cursor"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Send a channel message
// @Tags Message
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param serverId query string true "Server ID"
// @Param channelId query string true "Channel ID"
// @Param request body CreateMessageRequest true "Message"
// @Success 201 {object} Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/socket/messages [post]
func (h *handler) Create(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.service.Create(c.Request.Context(), actor, c.Query("serverId"), c.Query("channelId"), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// @Summary Edit a channel message
// @Description Only the author may edit. Deleted messages cannot be edited.
// @Tags Message
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param messageId path string true "Message ID"
// @Param serverId query string true "Server ID"
// @Param channelId query string true "Channel ID"
// @Param request body UpdateMessageRequest true "Content"
// @Success 200 {object} Message
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/socket/messages/{messageId} [patch]
func (h *handler) Update(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.service.Update(c.Request.Context(), actor, target(c), req.Content)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// @Summary Delete a channel message
// @Description Soft delete. Allowed for the author, admins and moderators.
// @Tags Message
// @Produce json
// @Security BearerAuth
// @Param messageId path string true "Message ID"
// @Param serverId query string true "Server ID"
// @Param channelId query string true "Channel ID"
// @Success 200 {object} Message
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/socket/messages/{messageId} [delete]
func (h *handler) Delete(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	msg, err := h.service.Delete(c.Request.Context(), actor, target(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
