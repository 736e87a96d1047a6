package member

import (
	"net/http"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	List(c *gin.Context)
	UpdateRole(c *gin.Context)
	Kick(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List server members
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Param serverId query string true "Server ID"
// @Success 200 {array} Member
// @Failure 404 {object} ErrorResponse
// @Router /api/members [get]
func (h *handler) List(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.service.List(c.Request.Context(), actor, c.Query("serverId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// @Summary Change a member's role
// @Description Server owner only. Owners cannot change their own role.
// @Tags Member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param serverId query string true "Server ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} Member
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/members/{memberId} [patch]
func (h *handler) UpdateRole(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.service.UpdateRole(c.Request.Context(), actor, c.Query("serverId"), c.Param("memberId"), req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary Kick a member
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param serverId query string true "Server ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/members/{memberId} [delete]
func (h *handler) Kick(c *gin.Context) {
	actor, ok := profile.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.service.Kick(c.Request.Context(), actor, c.Query("serverId"), c.Param("memberId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
