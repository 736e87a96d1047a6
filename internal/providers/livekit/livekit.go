package livekit

import (
	"fmt"
	"time"

	"discord-backend/internal/config"

	"github.com/livekit/protocol/auth"
)

// Provider mints room access tokens for the media service.
type Provider struct {
	apiKey    string
	apiSecret string
	url       string
	ttl       time.Duration
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		apiKey:    cfg.LiveKitAPIKey,
		apiSecret: cfg.LiveKitAPISecret,
		url:       cfg.LiveKitURL,
		ttl:       cfg.LiveKitTokenTTL,
	}
}

// Configured is false when any of the key, secret or media URL is missing.
func (p *Provider) Configured() bool {
	return p.apiKey != "" && p.apiSecret != "" && p.url != ""
}

func (p *Provider) URL() string {
	return p.url
}

// Issue signs a token for identity that can join, publish to and subscribe in room.
func (p *Provider) Issue(room, identity string) (string, error) {
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     room,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)

	at := auth.NewAccessToken(p.apiKey, p.apiSecret)
	at.AddGrant(grant).
		SetIdentity(identity).
		SetValidFor(p.ttl)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("failed to sign media token: %w", err)
	}
	return token, nil
}
