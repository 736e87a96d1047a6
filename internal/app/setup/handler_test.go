package setup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type finderStub struct {
	srv *server.Server
	err error
}

func (f finderStub) FirstForProfile(context.Context, string) (*server.Server, error) {
	return f.srv, f.err
}

func setupRouter(finder ServerFinder, actor *profile.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	if actor != nil {
		api.Use(func(c *gin.Context) {
			c.Set(profile.ContextKey, actor)
			c.Next()
		})
	}
	RegisterRoutes(api, NewHandler(NewService(finder)))
	return r
}

func request(r *gin.Engine) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/setup", nil))
	return rec
}

func TestSetupRedirectsToFirstServer(t *testing.T) {
	r := setupRouter(finderStub{srv: &server.Server{ID: "srv-1"}}, &profile.Profile{ID: "p1"})

	rec := request(r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect":"/servers/srv-1","server_id":"srv-1"}`, rec.Body.String())
}

func TestSetupWithoutServer(t *testing.T) {
	r := setupRouter(finderStub{}, &profile.Profile{ID: "p1"})

	rec := request(r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect":null,"message":"Create a Server"}`, rec.Body.String())
}

func TestSetupRequiresProfile(t *testing.T) {
	rec := request(setupRouter(finderStub{}, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetupLookupFailure(t *testing.T) {
	r := setupRouter(finderStub{err: errors.New("db down")}, &profile.Profile{ID: "p1"})

	rec := request(r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
