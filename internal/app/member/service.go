package member

import (
	"context"
	"errors"
	"fmt"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/providers/amqp"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	UpdateRole(ctx context.Context, actor *profile.Profile, serverID, memberID string, role Role) (*Member, error)
	Kick(ctx context.Context, actor *profile.Profile, serverID, memberID string) error
	List(ctx context.Context, actor *profile.Profile, serverID string) ([]*Member, error)
}

type service struct {
	repo    Repository
	auditor amqp.Auditor
	logger  *zap.SugaredLogger
}

func NewService(repo Repository, auditor amqp.Auditor, logger *zap.Logger) Service {
	if auditor == nil {
		auditor = amqp.NopAuditor{}
	}
	return &service{repo: repo, auditor: auditor, logger: logger.Sugar()}
}

// requireOwner loads the target member after checking actor owns the server.
func (s *service) requireOwner(ctx context.Context, actor *profile.Profile, serverID, memberID string) (*Member, error) {
	if serverID == "" {
		return nil, apperrors.InvalidArg("Server ID missing")
	}
	if memberID == "" {
		return nil, apperrors.InvalidArg("Member ID missing")
	}

	ownerID, err := s.repo.ServerOwnerID(ctx, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Server not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load server owner: %w", err)
	}
	if ownerID != actor.ID {
		return nil, apperrors.Forbidden("Only the server owner can manage members")
	}

	target, err := s.repo.FindInServer(ctx, memberID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	if target.ProfileID == actor.ID {
		return nil, apperrors.InvalidArg("You cannot change your own membership")
	}
	return target, nil
}

func (s *service) UpdateRole(ctx context.Context, actor *profile.Profile, serverID, memberID string, role Role) (*Member, error) {
	if !role.Valid() {
		return nil, apperrors.InvalidArg("Invalid role")
	}

	target, err := s.requireOwner(ctx, actor, serverID, memberID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	previous := target.Role
	target.Role = role

	s.logger.Infow("Member role changed", "server_id", serverID, "member_id", target.ID, "from", previous, "to", role)
	s.auditor.Emit(ctx, "member_role_changed", actor.ID, map[string]any{
		"server_id": serverID,
		"member_id": target.ID,
		"from":      previous,
		"to":        role,
	})
	return target, nil
}

func (s *service) Kick(ctx context.Context, actor *profile.Profile, serverID, memberID string) error {
	target, err := s.requireOwner(ctx, actor, serverID, memberID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.logger.Infow("Member kicked", "server_id", serverID, "member_id", target.ID)
	s.auditor.Emit(ctx, "member_kicked", actor.ID, map[string]any{
		"server_id":  serverID,
		"member_id":  target.ID,
		"profile_id": target.ProfileID,
	})
	return nil
}

func (s *service) List(ctx context.Context, actor *profile.Profile, serverID string) ([]*Member, error) {
	if serverID == "" {
		return nil, apperrors.InvalidArg("Server ID missing")
	}
	if _, err := s.repo.FindByProfileAndServer(ctx, actor.ID, serverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Server not found")
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	members, err := s.repo.ListByServer(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
