package member

import (
	"context"
	"testing"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memoryRepo holds the members of a single server "s1" owned by profile "owner".
type memoryRepo struct {
	members map[string]*Member
}

func (r *memoryRepo) FindByProfileAndServer(_ context.Context, profileID, serverID string) (*Member, error) {
	for _, m := range r.members {
		if m.ProfileID == profileID && m.ServerID == serverID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*Member, error) {
	if m, ok := r.members[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) FindInServer(_ context.Context, id, serverID string) (*Member, error) {
	if m, ok := r.members[id]; ok && m.ServerID == serverID {
		copied := *m
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) ServerOwnerID(_ context.Context, serverID string) (string, error) {
	if serverID != "s1" {
		return "", gorm.ErrRecordNotFound
	}
	return "owner", nil
}

func (r *memoryRepo) UpdateRole(_ context.Context, id string, role Role) error {
	r.members[id].Role = role
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	delete(r.members, id)
	return nil
}

func (r *memoryRepo) ListByServer(_ context.Context, serverID string) ([]*Member, error) {
	var out []*Member
	for _, m := range r.members {
		if m.ServerID == serverID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newMemberService() (Service, *memoryRepo) {
	repo := &memoryRepo{members: map[string]*Member{
		"m-owner": {ID: "m-owner", ProfileID: "owner", ServerID: "s1", Role: RoleAdmin},
		"m-bob":   {ID: "m-bob", ProfileID: "bob", ServerID: "s1", Role: RoleGuest},
	}}
	return NewService(repo, nil, zap.NewNop()), repo
}

func TestOwnerPromotesMember(t *testing.T) {
	svc, repo := newMemberService()

	m, err := svc.UpdateRole(context.Background(), &profile.Profile{ID: "owner"}, "s1", "m-bob", RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, RoleModerator, m.Role)
	assert.Equal(t, RoleModerator, repo.members["m-bob"].Role)
}

func TestOnlyOwnerManagesMembers(t *testing.T) {
	svc, _ := newMemberService()

	_, err := svc.UpdateRole(context.Background(), &profile.Profile{ID: "bob"}, "s1", "m-owner", RoleGuest)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))

	err = svc.Kick(context.Background(), &profile.Profile{ID: "bob"}, "s1", "m-owner")
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
}

func TestOwnerCannotTargetSelf(t *testing.T) {
	svc, _ := newMemberService()

	err := svc.Kick(context.Background(), &profile.Profile{ID: "owner"}, "s1", "m-owner")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	svc, _ := newMemberService()

	_, err := svc.UpdateRole(context.Background(), &profile.Profile{ID: "owner"}, "s1", "m-bob", "OWNER")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestKickRemovesMember(t *testing.T) {
	svc, repo := newMemberService()

	require.NoError(t, svc.Kick(context.Background(), &profile.Profile{ID: "owner"}, "s1", "m-bob"))
	assert.NotContains(t, repo.members, "m-bob")
}

func TestListRequiresMembership(t *testing.T) {
	svc, _ := newMemberService()

	_, err := svc.List(context.Background(), &profile.Profile{ID: "stranger"}, "s1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	members, err := svc.List(context.Background(), &profile.Profile{ID: "bob"}, "s1")
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
