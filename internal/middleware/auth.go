package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrMissingToken = errors.New("missing bearer token")

// SessionClaims are issued by the identity provider in front of the API.
type SessionClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// ProfileResolver turns a verified identity into the caller's profile.
type ProfileResolver interface {
	Current(ctx context.Context, identity profile.Identity) (*profile.Profile, error)
}

// SignSessionToken issues an HS256 session token. Used by the admin CLI and tests.
func SignSessionToken(secret string, identity profile.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Name:    identity.Name,
		Email:   identity.Email,
		Picture: identity.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the caller identity.
func ParseSessionToken(secret, raw string) (profile.Identity, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return profile.Identity{}, err
	}
	if claims.Subject == "" {
		return profile.Identity{}, errors.New("token has no subject")
	}
	return profile.Identity{
		UserID:   claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		ImageURL: claims.Picture,
	}, nil
}

func bearerToken(c *gin.Context) (string, error) {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
	// browsers cannot set headers on websocket upgrades
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

// AuthMiddleware resolves the current profile and stores it under profile.ContextKey.
func AuthMiddleware(secret string, resolver ProfileResolver, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Sugar()
	return func(c *gin.Context) {
		if secret == "" {
			log.Error("AUTH_JWT_SECRET is not configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured"})
			return
		}

		raw, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		identity, err := ParseSessionToken(secret, raw)
		if err != nil {
			log.Debugw("Rejected session token", "error", err, "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		p, err := resolver.Current(c.Request.Context(), identity)
		if err != nil {
			apperrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(profile.ContextKey, p)
		c.Next()
	}
}
