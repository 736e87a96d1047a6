package message

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	FindInChannel(ctx context.Context, id, channelID string) (*Message, error)
	Save(ctx context.Context, msg *Message) error
	ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*Message, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Member.Profile").Where("id = ?", msg.ID).First(msg).Error
}

func (r *repository) FindInChannel(ctx context.Context, id, channelID string) (*Message, error) {
	var msg Message
	err := r.db.WithContext(ctx).
		Preload("Member.Profile").
		Where("id = ? AND channel_id = ?", id, channelID).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *repository) Save(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).
		Model(&Message{}).
		Where("id = ?", msg.ID).
		Updates(map[string]interface{}{
			"content":    msg.Content,
			"file_url":   msg.FileURL,
			"deleted":    msg.Deleted,
			"edited":     msg.Edited,
			"updated_at": msg.UpdatedAt,
		}).Error
}

// ListByChannel returns up to limit messages newest first, strictly older than the cursor message.
func (r *repository) ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*Message, error) {
	var messages []*Message
	q := r.db.WithContext(ctx).
		Preload("Member.Profile").
		Where("channel_id = ?", channelID)
	if cursor != "" {
		q = q.Where("created_at < (?)",
			r.db.Model(&Message{}).Select("created_at").Where("id = ?", cursor))
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
