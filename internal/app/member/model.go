package member

import (
	"time"

	"discord-backend/internal/app/profile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed enum. Every table keyed by Role must cover AllRoles.
type Role string

const (
	RoleGuest     Role = "GUEST"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

var AllRoles = []Role{RoleGuest, RoleModerator, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate is true for roles allowed to delete other members' messages.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

type Member struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey"`
	Role      Role             `json:"role" gorm:"type:varchar(16);not null;default:GUEST"`
	ProfileID string           `json:"profile_id" gorm:"type:uuid;not null;uniqueIndex:idx_member_profile_server"`
	ServerID  string           `json:"server_id" gorm:"type:uuid;not null;uniqueIndex:idx_member_profile_server;index"`
	Profile   *profile.Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
