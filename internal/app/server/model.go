package server

import (
	"time"

	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/member"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Server struct {
	ID         string            `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string            `json:"name" gorm:"not null"`
	ImageURL   string            `json:"image_url" gorm:"type:text"`
	InviteCode string            `json:"invite_code" gorm:"uniqueIndex;not null"`
	ProfileID  string            `json:"profile_id" gorm:"type:uuid;not null;index"`
	Channels   []channel.Channel `json:"channels,omitempty" gorm:"foreignKey:ServerID;constraint:OnDelete:CASCADE"`
	Members    []member.Member   `json:"members,omitempty" gorm:"foreignKey:ServerID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (s *Server) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type ServerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

type ServerListResponse struct {
	Servers []*Server `json:"servers"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
