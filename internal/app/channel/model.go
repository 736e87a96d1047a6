package channel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Type string

const (
	TypeText  Type = "TEXT"
	TypeAudio Type = "AUDIO"
	TypeVideo Type = "VIDEO"
)

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeAudio, TypeVideo:
		return true
	}
	return false
}

// GeneralName is the channel every server starts with. It cannot be renamed or deleted.
const GeneralName = "general"

type Channel struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Type      Type      `json:"type" gorm:"type:varchar(8);not null;default:TEXT"`
	ProfileID string    `json:"profile_id" gorm:"type:uuid;not null;index"`
	ServerID  string    `json:"server_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Channel) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ChannelRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
	Type Type   `json:"type" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
