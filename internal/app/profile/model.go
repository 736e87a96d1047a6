package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	ImageURL  string    `json:"image_url" gorm:"type:text"`
	Email     string    `json:"email" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Identity is what the external auth provider tells us about the caller.
type Identity struct {
	UserID   string
	Name     string
	Email    string
	ImageURL string
}

type ErrorResponse struct {
	Error string `json:"error"`
}
