package server_test

import (
	"context"
	"testing"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"
	"discord-backend/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var owner = &profile.Profile{ID: "owner"}

func TestCreateSeedsGeneralChannelAndAdmin(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*server.Server")).Return(nil)

	srv, err := server.NewService(repo, nil, zap.NewNop()).
		Create(context.Background(), owner, server.ServerRequest{Name: "  Gophers  "})
	require.NoError(t, err)

	assert.Equal(t, "Gophers", srv.Name)
	assert.NotEmpty(t, srv.InviteCode)
	require.Len(t, srv.Channels, 1)
	assert.Equal(t, channel.GeneralName, srv.Channels[0].Name)
	assert.Equal(t, channel.TypeText, srv.Channels[0].Type)
	require.Len(t, srv.Members, 1)
	assert.Equal(t, member.RoleAdmin, srv.Members[0].Role)
	assert.Equal(t, "owner", srv.Members[0].ProfileID)
}

func TestCreateRequiresName(t *testing.T) {
	_, err := server.NewService(&mocks.ServerRepositoryMock{}, nil, zap.NewNop()).
		Create(context.Background(), owner, server.ServerRequest{Name: " "})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestUpdateRequiresAdmin(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("MemberRole", mock.Anything, "s1", "mod").Return(member.RoleModerator, nil)

	_, err := server.NewService(repo, nil, zap.NewNop()).
		Update(context.Background(), &profile.Profile{ID: "mod"}, "s1", server.ServerRequest{Name: "x"})

	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegenerateInviteChangesCode(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("MemberRole", mock.Anything, "s1", "owner").Return(member.RoleAdmin, nil)
	repo.On("UpdateInviteCode", mock.Anything, "s1", mock.AnythingOfType("string")).Return(nil)
	repo.On("FindByID", mock.Anything, "s1").Return(&server.Server{ID: "s1", InviteCode: "new"}, nil)

	srv, err := server.NewService(repo, nil, zap.NewNop()).RegenerateInvite(context.Background(), owner, "s1")

	require.NoError(t, err)
	assert.Equal(t, "new", srv.InviteCode)
	repo.AssertExpectations(t)
}

func TestOwnerCannotLeave(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("MemberRole", mock.Anything, "s1", "owner").Return(member.RoleAdmin, nil)
	repo.On("FindByID", mock.Anything, "s1").Return(&server.Server{ID: "s1", ProfileID: "owner"}, nil)

	err := server.NewService(repo, nil, zap.NewNop()).Leave(context.Background(), owner, "s1")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
	repo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnlyOwnerDeletes(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("FindByID", mock.Anything, "s1").Return(&server.Server{ID: "s1", ProfileID: "owner"}, nil)

	err := server.NewService(repo, nil, zap.NewNop()).Delete(context.Background(), &profile.Profile{ID: "admin"}, "s1")

	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestJoinByInviteAddsGuest(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("FindByInviteCode", mock.Anything, "code").Return(&server.Server{ID: "s1"}, nil)
	repo.On("AddMember", mock.Anything, mock.MatchedBy(func(m *member.Member) bool {
		return m.ServerID == "s1" && m.ProfileID == "guest" && m.Role == member.RoleGuest
	})).Return(nil)

	srv, err := server.NewService(repo, nil, zap.NewNop()).JoinByInvite(context.Background(), &profile.Profile{ID: "guest"}, "code")

	require.NoError(t, err)
	assert.Equal(t, "s1", srv.ID)
	repo.AssertExpectations(t)
}

func TestJoinByUnknownInvite(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("FindByInviteCode", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := server.NewService(repo, nil, zap.NewNop()).JoinByInvite(context.Background(), owner, "nope")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestFirstForProfileWithoutServers(t *testing.T) {
	repo := &mocks.ServerRepositoryMock{}
	repo.On("FirstForProfile", mock.Anything, "p1").Return(nil, gorm.ErrRecordNotFound)

	srv, err := server.NewService(repo, nil, zap.NewNop()).FirstForProfile(context.Background(), "p1")

	require.NoError(t, err)
	assert.Nil(t, srv)
}
