package server

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	RegenerateInvite(c *gin.Context)
	Leave(c *gin.Context)
	Delete(c *gin.Context)
	JoinByInvite(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func currentProfile(c *gin.Context) (*profile.Profile, bool) {
	p, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return p, ok
}

// @Summary Create a server
// @Description Creates the server with a "general" text channel and the caller as ADMIN
// @Tags Server
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ServerRequest true "Server"
// @Success 201 {object} Server
// @Failure 400 {object} ErrorResponse
// @Router /api/servers [post]
func (h *handler) Create(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req ServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	srv, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, srv)
}

// @Summary List my servers
// @Tags Server
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ServerListResponse
// @Router /api/servers [get]
func (h *handler) List(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	servers, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ServerListResponse{Servers: servers})
}

// @Summary Get a server with its channels and members
// @Tags Server
// @Produce json
// @Security BearerAuth
// @Param serverId path string true "Server ID"
// @Success 200 {object} Server
// @Failure 404 {object} ErrorResponse
// @Router /api/servers/{serverId} [get]
func (h *handler) Get(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	srv, err := h.service.Get(c.Request.Context(), actor, c.Param("serverId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, srv)
}

// @Summary Update server settings
// @Tags Server
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param serverId path string true "Server ID"
// @Param request body ServerRequest true "Server"
// @Success 200 {object} Server
// @Failure 403 {object} ErrorResponse
// @Router /api/servers/{serverId} [patch]
func (h *handler) Update(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	var req ServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	srv, err := h.service.Update(c.Request.Context(), actor, c.Param("serverId"), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, srv)
}

// @Summary Regenerate the invite code
// @Tags Server
// @Produce json
// @Security BearerAuth
// @Param serverId path string true "Server ID"
// @Success 200 {object} Server
// @Router /api/servers/{serverId}/invite-code [patch]
func (h *handler) RegenerateInvite(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	srv, err := h.service.RegenerateInvite(c.Request.Context(), actor, c.Param("serverId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, srv)
}

// @Summary Leave a server
// @Tags Server
// @Security BearerAuth
// @Param serverId path string true "Server ID"
// @Success 204
// @Router /api/servers/{serverId}/leave [patch]
func (h *handler) Leave(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	if err := h.service.Leave(c.Request.Context(), actor, c.Param("serverId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a server
// @Tags Server
// @Security BearerAuth
// @Param serverId path string true "Server ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/servers/{serverId} [delete]
func (h *handler) Delete(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("serverId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Join a server by invite code
// @Tags Server
// @Produce json
// @Security BearerAuth
// @Param inviteCode path string true "Invite code"
// @Success 200 {object} Server
// @Failure 404 {object} ErrorResponse
// @Router /api/invite/{inviteCode} [post]
func (h *handler) JoinByInvite(c *gin.Context) {
	actor, ok := currentProfile(c)
	if !ok {
		return
	}

	srv, err := h.service.JoinByInvite(c.Request.Context(), actor, c.Param("inviteCode"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, srv)
}
