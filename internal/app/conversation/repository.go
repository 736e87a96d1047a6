package conversation

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindBetween(ctx context.Context, memberA, memberB string) (*Conversation, error)
	Create(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id string) (*Conversation, error)

	CreateMessage(ctx context.Context, msg *DirectMessage) error
	FindMessage(ctx context.Context, id, conversationID string) (*DirectMessage, error)
	SaveMessage(ctx context.Context, msg *DirectMessage) error
	ListMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*DirectMessage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withMembers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("MemberOne.Profile").Preload("MemberTwo.Profile")
}

func (r *repository) FindBetween(ctx context.Context, memberA, memberB string) (*Conversation, error) {
	var conv Conversation
	err := r.withMembers(ctx).
		Where("(member_one_id = ? AND member_two_id = ?) OR (member_one_id = ? AND member_two_id = ?)",
			memberA, memberB, memberB, memberA).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *repository) Create(ctx context.Context, conv *Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return err
	}
	return r.withMembers(ctx).Where("id = ?", conv.ID).First(conv).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := r.withMembers(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *repository) CreateMessage(ctx context.Context, msg *DirectMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Member.Profile").Where("id = ?", msg.ID).First(msg).Error
}

func (r *repository) FindMessage(ctx context.Context, id, conversationID string) (*DirectMessage, error) {
	var msg DirectMessage
	err := r.db.WithContext(ctx).
		Preload("Member.Profile").
		Where("id = ? AND conversation_id = ?", id, conversationID).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *repository) SaveMessage(ctx context.Context, msg *DirectMessage) error {
	return r.db.WithContext(ctx).
		Model(&DirectMessage{}).
		Where("id = ?", msg.ID).
		Updates(map[string]interface{}{
			"content":    msg.Content,
			"file_url":   msg.FileURL,
			"deleted":    msg.Deleted,
			"edited":     msg.Edited,
			"updated_at": msg.UpdatedAt,
		}).Error
}

func (r *repository) ListMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*DirectMessage, error) {
	var messages []*DirectMessage
	q := r.db.WithContext(ctx).
		Preload("Member.Profile").
		Where("conversation_id = ?", conversationID)
	if cursor != "" {
		q = q.Where("created_at < (?)",
			r.db.Model(&DirectMessage{}).Select("created_at").Where("id = ?", cursor))
	}
	if err := q.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
