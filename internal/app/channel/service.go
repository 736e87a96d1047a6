package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/providers/amqp"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Membership interface {
	FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*member.Member, error)
}

type Service interface {
	Create(ctx context.Context, actor *profile.Profile, serverID string, req ChannelRequest) (*Channel, error)
	Update(ctx context.Context, actor *profile.Profile, serverID, channelID string, req ChannelRequest) (*Channel, error)
	Delete(ctx context.Context, actor *profile.Profile, serverID, channelID string) error
	Get(ctx context.Context, actor *profile.Profile, serverID, channelID string) (*Channel, error)
}

type service struct {
	repo    Repository
	members Membership
	auditor amqp.Auditor
	logger  *zap.SugaredLogger
}

func NewService(repo Repository, members Membership, auditor amqp.Auditor, logger *zap.Logger) Service {
	if auditor == nil {
		auditor = amqp.NopAuditor{}
	}
	return &service{repo: repo, members: members, auditor: auditor, logger: logger.Sugar()}
}

func (s *service) membership(ctx context.Context, actor *profile.Profile, serverID string) (*member.Member, error) {
	if serverID == "" {
		return nil, apperrors.InvalidArg("Server ID missing")
	}
	m, err := s.members.FindByProfileAndServer(ctx, actor.ID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Server not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return m, nil
}

func (s *service) requireModerator(ctx context.Context, actor *profile.Profile, serverID string) error {
	m, err := s.membership(ctx, actor, serverID)
	if err != nil {
		return err
	}
	if !m.Role.CanModerate() {
		return apperrors.Forbidden("Only admins and moderators can manage channels")
	}
	return nil
}

func validate(req ChannelRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", apperrors.InvalidArg("Channel name is required")
	}
	if strings.EqualFold(name, GeneralName) {
		return "", apperrors.InvalidArg(`Name cannot be "general"`)
	}
	if !req.Type.Valid() {
		return "", apperrors.InvalidArg("Invalid channel type")
	}
	return name, nil
}

func (s *service) Create(ctx context.Context, actor *profile.Profile, serverID string, req ChannelRequest) (*Channel, error) {
	name, err := validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.requireModerator(ctx, actor, serverID); err != nil {
		return nil, err
	}

	ch := &Channel{Name: name, Type: req.Type, ProfileID: actor.ID, ServerID: serverID}
	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.auditor.Emit(ctx, "channel_created", actor.ID, map[string]any{"server_id": serverID, "channel_id": ch.ID})
	return ch, nil
}

func (s *service) loadMutable(ctx context.Context, serverID, channelID string) (*Channel, error) {
	ch, err := s.repo.FindInServer(ctx, channelID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Channel not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	if ch.Name == GeneralName {
		return nil, apperrors.InvalidArg(`The "general" channel cannot be changed`)
	}
	return ch, nil
}

func (s *service) Update(ctx context.Context, actor *profile.Profile, serverID, channelID string, req ChannelRequest) (*Channel, error) {
	name, err := validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.requireModerator(ctx, actor, serverID); err != nil {
		return nil, err
	}
	ch, err := s.loadMutable(ctx, serverID, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, ch.ID, name, req.Type); err != nil {
		return nil, fmt.Errorf("failed to update channel: %w", err)
	}
	ch.Name, ch.Type = name, req.Type
	return ch, nil
}

func (s *service) Delete(ctx context.Context, actor *profile.Profile, serverID, channelID string) error {
	if err := s.requireModerator(ctx, actor, serverID); err != nil {
		return err
	}
	ch, err := s.loadMutable(ctx, serverID, channelID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ch.ID); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	s.logger.Infow("Channel deleted", "server_id", serverID, "channel_id", ch.ID)
	s.auditor.Emit(ctx, "channel_deleted", actor.ID, map[string]any{"server_id": serverID, "channel_id": ch.ID})
	return nil
}

func (s *service) Get(ctx context.Context, actor *profile.Profile, serverID, channelID string) (*Channel, error) {
	if _, err := s.membership(ctx, actor, serverID); err != nil {
		return nil, err
	}
	ch, err := s.repo.FindInServer(ctx, channelID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Channel not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	return ch, nil
}
