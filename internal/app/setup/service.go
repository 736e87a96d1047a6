package setup

import (
	"context"
	"fmt"

	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"
)

const createServerMessage = "Create a Server"

type ServerFinder interface {
	FirstForProfile(ctx context.Context, profileID string) (*server.Server, error)
}

type Service interface {
	Resolve(ctx context.Context, actor *profile.Profile) (*Result, error)
}

type service struct {
	servers ServerFinder
}

func NewService(servers ServerFinder) Service {
	return &service{servers: servers}
}

func (s *service) Resolve(ctx context.Context, actor *profile.Profile) (*Result, error) {
	srv, err := s.servers.FirstForProfile(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve setup: %w", err)
	}
	if srv == nil {
		return &Result{Message: createServerMessage}, nil
	}

	redirect := "/servers/" + srv.ID
	return &Result{Redirect: &redirect, ServerID: srv.ID}, nil
}
