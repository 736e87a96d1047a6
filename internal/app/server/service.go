package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/providers/amqp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor *profile.Profile, req ServerRequest) (*Server, error)
	List(ctx context.Context, actor *profile.Profile) ([]*Server, error)
	Get(ctx context.Context, actor *profile.Profile, serverID string) (*Server, error)
	Update(ctx context.Context, actor *profile.Profile, serverID string, req ServerRequest) (*Server, error)
	RegenerateInvite(ctx context.Context, actor *profile.Profile, serverID string) (*Server, error)
	Leave(ctx context.Context, actor *profile.Profile, serverID string) error
	Delete(ctx context.Context, actor *profile.Profile, serverID string) error
	JoinByInvite(ctx context.Context, actor *profile.Profile, inviteCode string) (*Server, error)
	// FirstForProfile returns nil without error when the profile has no memberships.
	FirstForProfile(ctx context.Context, profileID string) (*Server, error)
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

func (s *service) Create(ctx context.Context, actor *profile.Profile, req ServerRequest) (*Server, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.InvalidArg("Server name is required")
	}

	srv := &Server{
		Name:       name,
		ImageURL:   req.ImageURL,
		InviteCode: uuid.NewString(),
		ProfileID:  actor.ID,
		Channels: []channel.Channel{
			{Name: channel.GeneralName, Type: channel.TypeText, ProfileID: actor.ID},
		},
		Members: []member.Member{
			{ProfileID: actor.ID, Role: member.RoleAdmin},
		},
	}
	if err := s.repo.Create(ctx, srv); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	s.logger.Infow("Server created", "server_id", srv.ID, "profile_id", actor.ID)
	s.auditor.Emit(ctx, "server_created", actor.ID, map[string]any{"server_id": srv.ID})
	return srv, nil
}

func (s *service) List(ctx context.Context, actor *profile.Profile) ([]*Server, error) {
	servers, err := s.repo.ListForProfile(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return servers, nil
}

func (s *service) role(ctx context.Context, actor *profile.Profile, serverID string) (member.Role, error) {
	if serverID == "" {
		return "", apperrors.InvalidArg("Server ID missing")
	}
	role, err := s.repo.MemberRole(ctx, serverID, actor.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.NotFound("Server not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to check membership: %w", err)
	}
	return role, nil
}

func (s *service) Get(ctx context.Context, actor *profile.Profile, serverID string) (*Server, error) {
	if _, err := s.role(ctx, actor, serverID); err != nil {
		return nil, err
	}
	srv, err := s.repo.FindWithDetails(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load server: %w", err)
	}
	return srv, nil
}

func (s *service) requireAdmin(ctx context.Context, actor *profile.Profile, serverID string) error {
	role, err := s.role(ctx, actor, serverID)
	if err != nil {
		return err
	}
	if role != member.RoleAdmin {
		return apperrors.Forbidden("Only admins can change server settings")
	}
	return nil
}

func (s *service) Update(ctx context.Context, actor *profile.Profile, serverID string, req ServerRequest) (*Server, error) {
	if err := s.requireAdmin(ctx, actor, serverID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, serverID, strings.TrimSpace(req.Name), req.ImageURL); err != nil {
		return nil, fmt.Errorf("failed to update server: %w", err)
	}
	return s.repo.FindByID(ctx, serverID)
}

func (s *service) RegenerateInvite(ctx context.Context, actor *profile.Profile, serverID string) (*Server, error) {
	if err := s.requireAdmin(ctx, actor, serverID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateInviteCode(ctx, serverID, uuid.NewString()); err != nil {
		return nil, fmt.Errorf("failed to regenerate invite code: %w", err)
	}
	return s.repo.FindByID(ctx, serverID)
}

func (s *service) Leave(ctx context.Context, actor *profile.Profile, serverID string) error {
	if _, err := s.role(ctx, actor, serverID); err != nil {
		return err
	}
	srv, err := s.repo.FindByID(ctx, serverID)
	if err != nil {
		return fmt.Errorf("failed to load server: %w", err)
	}
	if srv.ProfileID == actor.ID {
		return apperrors.InvalidArg("The owner cannot leave the server")
	}

	if err := s.repo.RemoveMember(ctx, serverID, actor.ID); err != nil {
		return fmt.Errorf("failed to leave server: %w", err)
	}
	s.auditor.Emit(ctx, "server_left", actor.ID, map[string]any{"server_id": serverID})
	return nil
}

func (s *service) Delete(ctx context.Context, actor *profile.Profile, serverID string) error {
	if serverID == "" {
		return apperrors.InvalidArg("Server ID missing")
	}
	srv, err := s.repo.FindByID(ctx, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Server not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load server: %w", err)
	}
	if srv.ProfileID != actor.ID {
		return apperrors.Forbidden("Only the owner can delete the server")
	}

	if err := s.repo.Delete(ctx, serverID); err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}
	s.logger.Infow("Server deleted", "server_id", serverID)
	s.auditor.Emit(ctx, "server_deleted", actor.ID, map[string]any{"server_id": serverID})
	return nil
}

func (s *service) JoinByInvite(ctx context.Context, actor *profile.Profile, inviteCode string) (*Server, error) {
	if inviteCode == "" {
		return nil, apperrors.InvalidArg("Invite code missing")
	}
	srv, err := s.repo.FindByInviteCode(ctx, inviteCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Invite not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}

	if err := s.repo.AddMember(ctx, &member.Member{ServerID: srv.ID, ProfileID: actor.ID, Role: member.RoleGuest}); err != nil {
		return nil, fmt.Errorf("failed to join server: %w", err)
	}
	return srv, nil
}

func (s *service) FirstForProfile(ctx context.Context, profileID string) (*Server, error) {
	srv, err := s.repo.FirstForProfile(ctx, profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find server for profile: %w", err)
	}
	return srv, nil
}
