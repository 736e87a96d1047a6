package conversation

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Start(c *gin.Context)
	ListMessages(c *gin.Context)
	CreateMessage(c *gin.Context)
	UpdateMessage(c *gin.Context)
	DeleteMessage(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func requireProfile(c *gin.Context) (*profile.Profile, bool) {
	p, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return p, ok
}

// @Summary Open a direct conversation with a member
// @Tags Conversation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param serverId query string true "Server ID"
// @Param request body StartRequest true "Target member"
// @Success 200 {object} Conversation
// @Failure 404 {object} ErrorResponse
// @Router /api/conversations [post]
func (h *handler) Start(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Member ID missing"})
		return
	}

	conv, err := h.service.GetOrCreate(c.Request.Context(), actor, c.Query("serverId"), req.MemberID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// @Summary List direct messages
// @Tags Conversation
// @Produce json
// @Security BearerAuth
// @Param conversationId query string true "Conversation ID"
// @Param cursor query string false "Cursor"
// @Success 200 {object} DirectMessagePage
// @Router /api/direct-messages [get]
func (h *handler) ListMessages(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	page, err := h.service.ListMessages(c.Request.Context(), actor, c.Query("conversationId"), c.Query("cursor"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Send a direct message
// @Tags Conversation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conversationId query string true "Conversation ID"
// @Param request body message.CreateMessageRequest true "Message"
// @Success 201 {object} DirectMessage
// @Router /api/socket/direct-messages [post]
func (h *handler) CreateMessage(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	var req message.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.service.CreateMessage(c.Request.Context(), actor, c.Query("conversationId"), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// @Summary Edit a direct message
// @Tags Conversation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param directMessageId path string true "Direct message ID"
// @Param conversationId query string true "Conversation ID"
// @Param request body message.UpdateMessageRequest true "Content"
// @Success 200 {object} DirectMessage
// @Failure 403 {object} ErrorResponse
// @Router /api/socket/direct-messages/{directMessageId} [patch]
func (h *handler) UpdateMessage(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	var req message.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.service.UpdateMessage(c.Request.Context(), actor, c.Query("conversationId"), c.Param("directMessageId"), req.Content)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// @Summary Delete a direct message
// @Tags Conversation
// @Produce json
// @Security BearerAuth
// @Param directMessageId path string true "Direct message ID"
// @Param conversationId query string true "Conversation ID"
// @Success 200 {object} DirectMessage
// @Failure 403 {object} ErrorResponse
// @Router /api/socket/direct-messages/{directMessageId} [delete]
func (h *handler) DeleteMessage(c *gin.Context) {
	actor, ok := requireProfile(c)
	if !ok {
		return
	}

	msg, err := h.service.DeleteMessage(c.Request.Context(), actor, c.Query("conversationId"), c.Param("directMessageId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
