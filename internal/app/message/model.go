package message

import (
	"time"

	"discord-backend/internal/app/member"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeletedContent replaces the content of a soft-deleted message.
const DeletedContent = "This message has been deleted."

type Message struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	FileURL   *string        `json:"fileUrl" gorm:"column:file_url;type:text"`
	MemberID  string         `json:"memberId" gorm:"type:uuid;not null;index"`
	Member    *member.Member `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	ChannelID string         `json:"channelId" gorm:"type:uuid;not null;index:idx_messages_channel_created"`
	Deleted   bool           `json:"deleted" gorm:"not null;default:false"`
	Edited    bool           `json:"edited" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index:idx_messages_channel_created"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SoftDelete blanks the message. A deleted message is never mutated again.
func (m *Message) SoftDelete() {
	m.Deleted = true
	m.FileURL = nil
	m.Content = DeletedContent
	m.UpdatedAt = time.Now()
}

func (m *Message) Edit(content string) {
	m.Content = content
	m.Edited = true
	m.UpdatedAt = time.Now()
}

type CreateMessageRequest struct {
	Content string  `json:"content"`
	FileURL *string `json:"fileUrl,omitempty"`
}

type UpdateMessageRequest struct {
	Content string `json:"content"`
}

type MessagePage struct {
	Items      []*Message `json:"items"`
	NextCursor *string    `json:"nextCursor"`
}

// Target addresses one message inside a channel of a server.
type Target struct {
	ServerID  string
	ChannelID string
	MessageID string
}

type ErrorResponse struct {
	Error string `json:"error"`
}
