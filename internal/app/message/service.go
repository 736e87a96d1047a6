package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/observability"
	"discord-backend/internal/providers/amqp"
	"discord-backend/internal/providers/redis"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cachePrefix = "messages:channel"

var tracer = otel.Tracer("discord-backend/message")

// AddKey is the realtime event carrying newly created messages of a channel.
func AddKey(channelID string) string {
	return fmt.Sprintf("chat:%s:messages", channelID)
}

// UpdateKey is the realtime event carrying edited and deleted messages of a channel.
func UpdateKey(channelID string) string {
	return fmt.Sprintf("chat:%s:messages:update", channelID)
}

type Membership interface {
	FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*member.Member, error)
}

type Channels interface {
	FindInServer(ctx context.Context, id, serverID string) (*channel.Channel, error)
}

type FileConfirmer interface {
	ConfirmURL(ctx context.Context, fileURL string) (string, error)
}

type Broadcaster interface {
	Publish(event string, data interface{})
}

type Service interface {
	List(ctx context.Context, actor *profile.Profile, serverID, channelID, cursor string) (*MessagePage, error)
	Create(ctx context.Context, actor *profile.Profile, serverID, channelID string, req CreateMessageRequest) (*Message, error)
	Update(ctx context.Context, actor *profile.Profile, target Target, content string) (*Message, error)
	Delete(ctx context.Context, actor *profile.Profile, target Target) (*Message, error)
}

type Deps struct {
	Repo      Repository
	Members   Membership
	Channels  Channels
	Files     FileConfirmer
	Cache     redis.Cache
	Events    Broadcaster
	Auditor   amqp.Auditor
	BatchSize int
	CacheTTL  time.Duration
}

type service struct {
	repo      Repository
	members   Membership
	channels  Channels
	files     FileConfirmer
	cache     redis.Cache
	events    Broadcaster
	auditor   amqp.Auditor
	batchSize int
	cacheTTL  time.Duration
	logger    *zap.SugaredLogger
}

func NewService(deps Deps, logger *zap.Logger) Service {
	s := &service{
		repo:      deps.Repo,
		members:   deps.Members,
		channels:  deps.Channels,
		files:     deps.Files,
		cache:     deps.Cache,
		events:    deps.Events,
		auditor:   deps.Auditor,
		batchSize: deps.BatchSize,
		cacheTTL:  deps.CacheTTL,
		logger:    logger.Sugar(),
	}
	if s.cache == nil {
		s.cache = redis.NopCache{}
	}
	if s.auditor == nil {
		s.auditor = amqp.NopAuditor{}
	}
	if s.batchSize <= 0 {
		s.batchSize = 10
	}
	return s
}

// List checks membership before the cache is consulted. Cached pages are shared by all members.
func (s *service) List(ctx context.Context, actor *profile.Profile, serverID, channelID, cursor string) (*MessagePage, error) {
	if _, err := s.access(ctx, actor, serverID, channelID); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s:%s:cursor:%s", cachePrefix, channelID, cursorKey(cursor))
	var cached MessagePage
	if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.logger.Warnw("Message cache read failed", "key", cacheKey, "error", err)
	}

	messages, err := s.repo.ListByChannel(ctx, channelID, cursor, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	page := &MessagePage{Items: messages}
	if page.Items == nil {
		page.Items = []*Message{}
	}
	if len(messages) == s.batchSize {
		next := messages[len(messages)-1].ID
		page.NextCursor = &next
	}

	if err := s.cache.SetJSON(ctx, cacheKey, page, s.cacheTTL); err != nil {
		s.logger.Warnw("Message cache write failed", "key", cacheKey, "error", err)
	}
	return page, nil
}

func cursorKey(cursor string) string {
	if cursor == "" {
		return "first"
	}
	return cursor
}

// access resolves the acting member and checks the channel belongs to the server.
func (s *service) access(ctx context.Context, actor *profile.Profile, serverID, channelID string) (*member.Member, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	if serverID == "" {
		return nil, apperrors.InvalidArg("Server ID missing")
	}
	if channelID == "" {
		return nil, apperrors.InvalidArg("Channel ID missing")
	}

	m, err := s.members.FindByProfileAndServer(ctx, actor.ID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Server not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if _, err := s.channels.FindInServer(ctx, channelID, serverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Channel not found")
		}
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	return m, nil
}

func (s *service) Create(ctx context.Context, actor *profile.Profile, serverID, channelID string, req CreateMessageRequest) (*Message, error) {
	ctx, span := tracer.Start(ctx, "message.Create")
	defer span.End()

	m, err := s.access(ctx, actor, serverID, channelID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.InvalidArg("Content missing")
	}

	msg := &Message{Content: content, MemberID: m.ID, ChannelID: channelID}
	if req.FileURL != nil && *req.FileURL != "" {
		if s.files == nil {
			return nil, apperrors.FailedPrecondition("Attachments are not available")
		}
		url, err := s.files.ConfirmURL(ctx, *req.FileURL)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid file URL", err)
		}
		msg.FileURL = &url
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	span.SetAttributes(attribute.String("message.id", msg.ID), attribute.String("channel.id", channelID))

	s.invalidateCache(ctx, channelID)
	s.publish(AddKey(channelID), msg)
	observability.IncMessageMutation("channel", "create")
	return msg, nil
}

// mutable loads the target message and the acting member. Deleted messages are reported as missing.
func (s *service) mutable(ctx context.Context, actor *profile.Profile, target Target) (*Message, *member.Member, error) {
	m, err := s.access(ctx, actor, target.ServerID, target.ChannelID)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.repo.FindInChannel(ctx, target.MessageID, target.ChannelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.NotFound("Message not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load message: %w", err)
	}
	if msg.Deleted {
		return nil, nil, apperrors.NotFound("Message not found")
	}
	return msg, m, nil
}

func (s *service) Update(ctx context.Context, actor *profile.Profile, target Target, content string) (*Message, error) {
	ctx, span := tracer.Start(ctx, "message.Update")
	defer span.End()

	msg, m, err := s.mutable(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	if msg.MemberID != m.ID {
		return nil, apperrors.Forbidden("Only the author can edit this message")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.InvalidArg("Content missing")
	}

	msg.Edit(content)
	if err := s.repo.Save(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	s.invalidateCache(ctx, target.ChannelID)
	s.publish(UpdateKey(target.ChannelID), msg)
	observability.IncMessageMutation("channel", "update")
	return msg, nil
}

func (s *service) Delete(ctx context.Context, actor *profile.Profile, target Target) (*Message, error) {
	ctx, span := tracer.Start(ctx, "message.Delete")
	defer span.End()

	msg, m, err := s.mutable(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	owner := msg.MemberID == m.ID
	if !owner && !m.Role.CanModerate() {
		return nil, apperrors.Forbidden("Only the author, admins and moderators can delete this message")
	}

	msg.SoftDelete()
	if err := s.repo.Save(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return nil, fmt.Errorf("failed to delete message: %w", err)
	}

	s.invalidateCache(ctx, target.ChannelID)
	s.publish(UpdateKey(target.ChannelID), msg)
	observability.IncMessageMutation("channel", "delete")
	if !owner {
		s.auditor.Emit(ctx, "message_moderated", actor.ID, map[string]any{
			"message_id": msg.ID,
			"channel_id": target.ChannelID,
			"server_id":  target.ServerID,
			"role":       string(m.Role),
		})
	}
	return msg, nil
}

func (s *service) publish(event string, msg *Message) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, msg)
}

func (s *service) invalidateCache(ctx context.Context, channelID string) {
	pattern := fmt.Sprintf("%s:%s:*", cachePrefix, channelID)
	deleted, err := s.cache.DeleteByPattern(ctx, pattern)
	if err != nil {
		s.logger.Warnw("Message cache invalidation failed", "pattern", pattern, "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Debugw("Message list cache invalidated", "channel_id", channelID, "deleted_keys", deleted)
	}
}
