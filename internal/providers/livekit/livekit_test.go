package livekit

import (
	"testing"
	"time"

	"discord-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider() *Provider {
	return NewProvider(&config.Config{
		LiveKitAPIKey:    "APIkey",
		LiveKitAPISecret: "a-very-long-livekit-secret-for-tests",
		LiveKitURL:       "wss://media.example.com",
		LiveKitTokenTTL:  time.Hour,
	})
}

func TestIssueCarriesRoomGrantAndIdentity(t *testing.T) {
	p := newTestProvider()

	token, err := p.Issue("channel-42", "alice")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("a-very-long-livekit-secret-for-tests"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "APIkey", claims["iss"])

	video, ok := claims["video"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "channel-42", video["room"])
	assert.Equal(t, true, video["roomJoin"])
	assert.Equal(t, true, video["canPublish"])
	assert.Equal(t, true, video["canSubscribe"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestConfigured(t *testing.T) {
	assert.True(t, newTestProvider().Configured())
	assert.False(t, NewProvider(&config.Config{LiveKitAPIKey: "k", LiveKitAPISecret: "s"}).Configured())
}
