package profile

import (
	"context"
	"errors"
	"fmt"

	"discord-backend/internal/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Current returns the profile for identity, provisioning it on first sight.
	Current(ctx context.Context, identity Identity) (*Profile, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Sugar()}
}

func (s *service) Current(ctx context.Context, identity Identity) (*Profile, error) {
	if identity.UserID == "" {
		return nil, apperrors.Unauthorized("Unauthorized")
	}

	p, err := s.repo.FindByUserID(ctx, identity.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	name := identity.Name
	if name == "" {
		name = "User"
	}

	p, err = s.repo.CreateIfAbsent(ctx, &Profile{
		UserID:   identity.UserID,
		Name:     name,
		Email:    identity.Email,
		ImageURL: identity.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Infow("Profile provisioned", "profile_id", p.ID, "user_id", p.UserID)
	return p, nil
}
