package conversation

import (
	"time"

	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	MemberOneID string         `json:"memberOneId" gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	MemberOne   *member.Member `json:"memberOne,omitempty" gorm:"foreignKey:MemberOneID;constraint:OnDelete:CASCADE"`
	MemberTwoID string         `json:"memberTwoId" gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair;index"`
	MemberTwo   *member.Member `json:"memberTwo,omitempty" gorm:"foreignKey:MemberTwoID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (c *Conversation) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Participant returns the side of the conversation owned by profileID, or nil.
func (c *Conversation) Participant(profileID string) *member.Member {
	switch {
	case c.MemberOne != nil && c.MemberOne.ProfileID == profileID:
		return c.MemberOne
	case c.MemberTwo != nil && c.MemberTwo.ProfileID == profileID:
		return c.MemberTwo
	}
	return nil
}

type DirectMessage struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	Content        string         `json:"content" gorm:"type:text;not null"`
	FileURL        *string        `json:"fileUrl" gorm:"column:file_url;type:text"`
	MemberID       string         `json:"memberId" gorm:"type:uuid;not null;index"`
	Member         *member.Member `json:"member,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	ConversationID string         `json:"conversationId" gorm:"type:uuid;not null;index:idx_dm_conversation_created"`
	Deleted        bool           `json:"deleted" gorm:"not null;default:false"`
	Edited         bool           `json:"edited" gorm:"not null;default:false"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"index:idx_dm_conversation_created"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (m *DirectMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *DirectMessage) SoftDelete() {
	m.Deleted = true
	m.FileURL = nil
	m.Content = message.DeletedContent
	m.UpdatedAt = time.Now()
}

func (m *DirectMessage) Edit(content string) {
	m.Content = content
	m.Edited = true
	m.UpdatedAt = time.Now()
}

type StartRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type DirectMessagePage struct {
	Items      []*DirectMessage `json:"items"`
	NextCursor *string          `json:"nextCursor"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
