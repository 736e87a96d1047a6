package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/observability"
	"discord-backend/internal/providers/amqp"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("discord-backend/conversation")

type Members interface {
	FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*member.Member, error)
	FindInServer(ctx context.Context, id, serverID string) (*member.Member, error)
}

type Service interface {
	GetOrCreate(ctx context.Context, actor *profile.Profile, serverID, memberID string) (*Conversation, error)
	ListMessages(ctx context.Context, actor *profile.Profile, conversationID, cursor string) (*DirectMessagePage, error)
	CreateMessage(ctx context.Context, actor *profile.Profile, conversationID string, req message.CreateMessageRequest) (*DirectMessage, error)
	UpdateMessage(ctx context.Context, actor *profile.Profile, conversationID, messageID, content string) (*DirectMessage, error)
	DeleteMessage(ctx context.Context, actor *profile.Profile, conversationID, messageID string) (*DirectMessage, error)
}

type service struct {
	repo      Repository
	members   Members
	files     message.FileConfirmer
	events    message.Broadcaster
	auditor   amqp.Auditor
	batchSize int
	logger    *zap.SugaredLogger
}

func NewService(
	repo Repository,
	members Members,
	files message.FileConfirmer,
	events message.Broadcaster,
	auditor amqp.Auditor,
	batchSize int,
	logger *zap.Logger,
) Service {
	if auditor == nil {
		auditor = amqp.NopAuditor{}
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &service{
		repo:      repo,
		members:   members,
		files:     files,
		events:    events,
		auditor:   auditor,
		batchSize: batchSize,
		logger:    logger.Sugar(),
	}
}

func (s *service) GetOrCreate(ctx context.Context, actor *profile.Profile, serverID, memberID string) (*Conversation, error) {
	if serverID == "" {
		return nil, apperrors.InvalidArg("Server ID missing")
	}
	if memberID == "" {
		return nil, apperrors.InvalidArg("Member ID missing")
	}

	self, err := s.members.FindByProfileAndServer(ctx, actor.ID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Server not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if self.ID == memberID {
		return nil, apperrors.InvalidArg("Cannot start a conversation with yourself")
	}

	other, err := s.members.FindInServer(ctx, memberID, serverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	conv, err := s.repo.FindBetween(ctx, self.ID, other.ID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	conv = &Conversation{MemberOneID: self.ID, MemberTwoID: other.ID}
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	s.logger.Infow("Conversation created", "conversation_id", conv.ID, "server_id", serverID)
	return conv, nil
}

// participant resolves the acting member of a conversation. Outsiders see the conversation as missing.
func (s *service) participant(ctx context.Context, actor *profile.Profile, conversationID string) (*member.Member, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	if conversationID == "" {
		return nil, apperrors.InvalidArg("Conversation ID missing")
	}

	conv, err := s.repo.FindByID(ctx, conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Conversation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	m := conv.Participant(actor.ID)
	if m == nil {
		return nil, apperrors.NotFound("Conversation not found")
	}
	return m, nil
}

func (s *service) ListMessages(ctx context.Context, actor *profile.Profile, conversationID, cursor string) (*DirectMessagePage, error) {
	if _, err := s.participant(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx, conversationID, cursor, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}

	page := &DirectMessagePage{Items: messages}
	if page.Items == nil {
		page.Items = []*DirectMessage{}
	}
	if len(messages) == s.batchSize {
		next := messages[len(messages)-1].ID
		page.NextCursor = &next
	}
	return page, nil
}

func (s *service) CreateMessage(ctx context.Context, actor *profile.Profile, conversationID string, req message.CreateMessageRequest) (*DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "conversation.CreateMessage")
	defer span.End()

	m, err := s.participant(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.InvalidArg("Content missing")
	}

	msg := &DirectMessage{Content: content, MemberID: m.ID, ConversationID: conversationID}
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

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return nil, fmt.Errorf("failed to create direct message: %w", err)
	}

	s.publish(message.AddKey(conversationID), msg)
	observability.IncMessageMutation("direct", "create")
	return msg, nil
}

func (s *service) mutable(ctx context.Context, actor *profile.Profile, conversationID, messageID string) (*DirectMessage, *member.Member, error) {
	m, err := s.participant(ctx, actor, conversationID)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.repo.FindMessage(ctx, messageID, conversationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.NotFound("Message not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load direct message: %w", err)
	}
	if msg.Deleted {
		return nil, nil, apperrors.NotFound("Message not found")
	}
	return msg, m, nil
}

func (s *service) UpdateMessage(ctx context.Context, actor *profile.Profile, conversationID, messageID, content string) (*DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "conversation.UpdateMessage")
	defer span.End()

	msg, m, err := s.mutable(ctx, actor, conversationID, messageID)
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
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, fmt.Errorf("failed to update direct message: %w", err)
	}

	s.publish(message.UpdateKey(conversationID), msg)
	observability.IncMessageMutation("direct", "update")
	return msg, nil
}

func (s *service) DeleteMessage(ctx context.Context, actor *profile.Profile, conversationID, messageID string) (*DirectMessage, error) {
	ctx, span := tracer.Start(ctx, "conversation.DeleteMessage")
	defer span.End()

	msg, m, err := s.mutable(ctx, actor, conversationID, messageID)
	if err != nil {
		return nil, err
	}
	owner := msg.MemberID == m.ID
	if !owner && !m.Role.CanModerate() {
		return nil, apperrors.Forbidden("Only the author, admins and moderators can delete this message")
	}

	msg.SoftDelete()
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return nil, fmt.Errorf("failed to delete direct message: %w", err)
	}

	s.publish(message.UpdateKey(conversationID), msg)
	observability.IncMessageMutation("direct", "delete")
	if !owner {
		s.auditor.Emit(ctx, "direct_message_moderated", actor.ID, map[string]any{
			"message_id":      msg.ID,
			"conversation_id": conversationID,
		})
	}
	return msg, nil
}

func (s *service) publish(event string, msg *DirectMessage) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, msg)
}
