package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("OWNER").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleCanModerate(t *testing.T) {
	assert.True(t, RoleAdmin.CanModerate())
	assert.True(t, RoleModerator.CanModerate())
	assert.False(t, RoleGuest.CanModerate())
}
