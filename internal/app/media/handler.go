package media

import (
	"net/http"

	"discord-backend/internal/observability"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("discord-backend/media")

// TokenIssuer signs media room grants.
type TokenIssuer interface {
	Configured() bool
	Issue(room, identity string) (string, error)
}

type Handler interface {
	Token(c *gin.Context)
}

type handler struct {
	issuer TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(issuer TokenIssuer, logger *zap.Logger) Handler {
	return &handler{issuer: issuer, logger: logger.Sugar()}
}

// @Summary Issue a media room token
// @Description Grants join, publish and subscribe on the room for the given identity
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param room query string true "Room name"
// @Param username query string true "Participant identity"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/livekit [get]
func (h *handler) Token(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "media.Token")
	defer span.End()

	room := c.Query("room")
	username := c.Query("username")
	if room == "" {
		observability.IncMediaToken("bad_request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: `Missing "room" query parameter`})
		return
	}
	if username == "" {
		observability.IncMediaToken("bad_request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: `Missing "username" query parameter`})
		return
	}

	if h.issuer == nil || !h.issuer.Configured() {
		observability.IncMediaToken("misconfigured")
		h.logger.Errorw("Media service credentials are not configured")
		span.SetStatus(codes.Error, "misconfigured")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server misconfigured"})
		return
	}

	span.SetAttributes(attribute.String("media.room", room))
	token, err := h.issuer.Issue(room, username)
	if err != nil {
		observability.IncMediaToken("error")
		h.logger.Errorw("Failed to generate media token", "room", room, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	observability.IncMediaToken("ok")
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
