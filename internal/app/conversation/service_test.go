package conversation_test

import (
	"context"
	"testing"
	"time"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/conversation"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(repo *mocks.ConversationRepositoryMock, members *mocks.MembersMock, events *mocks.BroadcasterMock) conversation.Service {
	return conversation.NewService(repo, members, nil, events, nil, 10, zap.NewNop())
}

func storedConversation(repo *mocks.ConversationRepositoryMock, guestRole member.Role) *conversation.Conversation {
	conv := &conversation.Conversation{
		ID:          "conv-1",
		MemberOneID: "mem-1",
		MemberOne:   &member.Member{ID: "mem-1", ProfileID: "p1", Role: member.RoleGuest},
		MemberTwoID: "mem-2",
		MemberTwo:   &member.Member{ID: "mem-2", ProfileID: "p2", Role: guestRole},
	}
	repo.On("FindByID", mock.Anything, "conv-1").Return(conv, nil)
	return conv
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	repo, members := &mocks.ConversationRepositoryMock{}, &mocks.MembersMock{}
	members.On("FindByProfileAndServer", mock.Anything, "p1", "s1").Return(&member.Member{ID: "mem-1"}, nil)
	members.On("FindInServer", mock.Anything, "mem-2", "s1").Return(&member.Member{ID: "mem-2"}, nil)
	existing := &conversation.Conversation{ID: "conv-1"}
	repo.On("FindBetween", mock.Anything, "mem-1", "mem-2").Return(existing, nil)

	conv, err := newService(repo, members, nil).GetOrCreate(context.Background(), &profile.Profile{ID: "p1"}, "s1", "mem-2")

	require.NoError(t, err)
	assert.Same(t, existing, conv)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreateCreatesMissing(t *testing.T) {
	repo, members := &mocks.ConversationRepositoryMock{}, &mocks.MembersMock{}
	members.On("FindByProfileAndServer", mock.Anything, "p1", "s1").Return(&member.Member{ID: "mem-1"}, nil)
	members.On("FindInServer", mock.Anything, "mem-2", "s1").Return(&member.Member{ID: "mem-2"}, nil)
	repo.On("FindBetween", mock.Anything, "mem-1", "mem-2").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *conversation.Conversation) bool {
		return c.MemberOneID == "mem-1" && c.MemberTwoID == "mem-2"
	})).Return(nil)

	_, err := newService(repo, members, nil).GetOrCreate(context.Background(), &profile.Profile{ID: "p1"}, "s1", "mem-2")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetOrCreateWithSelf(t *testing.T) {
	members := &mocks.MembersMock{}
	members.On("FindByProfileAndServer", mock.Anything, "p1", "s1").Return(&member.Member{ID: "mem-1"}, nil)

	_, err := newService(&mocks.ConversationRepositoryMock{}, members, nil).
		GetOrCreate(context.Background(), &profile.Profile{ID: "p1"}, "s1", "mem-1")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestOutsiderCannotReadConversation(t *testing.T) {
	repo := &mocks.ConversationRepositoryMock{}
	storedConversation(repo, member.RoleGuest)

	_, err := newService(repo, nil, nil).ListMessages(context.Background(), &profile.Profile{ID: "p3"}, "conv-1", "")

	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	repo.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOtherParticipantCannotEdit(t *testing.T) {
	repo := &mocks.ConversationRepositoryMock{}
	storedConversation(repo, member.RoleAdmin)
	repo.On("FindMessage", mock.Anything, "dm-1", "conv-1").
		Return(&conversation.DirectMessage{ID: "dm-1", MemberID: "mem-1", ConversationID: "conv-1"}, nil)

	_, err := newService(repo, nil, nil).UpdateMessage(context.Background(), &profile.Profile{ID: "p2"}, "conv-1", "dm-1", "edited")

	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
	repo.AssertNotCalled(t, "SaveMessage", mock.Anything, mock.Anything)
}

func TestGuestParticipantCannotDeleteOthers(t *testing.T) {
	repo := &mocks.ConversationRepositoryMock{}
	storedConversation(repo, member.RoleGuest)
	repo.On("FindMessage", mock.Anything, "dm-1", "conv-1").
		Return(&conversation.DirectMessage{ID: "dm-1", MemberID: "mem-1", ConversationID: "conv-1"}, nil)

	_, err := newService(repo, nil, nil).DeleteMessage(context.Background(), &profile.Profile{ID: "p2"}, "conv-1", "dm-1")

	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
}

func TestAuthorDeletesDirectMessage(t *testing.T) {
	repo, events := &mocks.ConversationRepositoryMock{}, &mocks.BroadcasterMock{}
	storedConversation(repo, member.RoleGuest)
	dm := &conversation.DirectMessage{ID: "dm-1", MemberID: "mem-1", ConversationID: "conv-1", Content: "oops"}
	repo.On("FindMessage", mock.Anything, "dm-1", "conv-1").Return(dm, nil)
	repo.On("SaveMessage", mock.Anything, dm).Return(nil)
	events.On("Publish", "chat:conv-1:messages:update", dm).Return()

	got, err := newService(repo, nil, events).DeleteMessage(context.Background(), &profile.Profile{ID: "p1"}, "conv-1", "dm-1")

	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, message.DeletedContent, got.Content)
	assert.False(t, got.UpdatedAt.IsZero())
	events.AssertExpectations(t)
}

func TestAuthorEditRefreshesUpdatedAt(t *testing.T) {
	repo, events := &mocks.ConversationRepositoryMock{}, &mocks.BroadcasterMock{}
	storedConversation(repo, member.RoleGuest)
	stale := time.Now().Add(-time.Hour)
	dm := &conversation.DirectMessage{ID: "dm-1", MemberID: "mem-1", ConversationID: "conv-1", Content: "helo", UpdatedAt: stale}
	repo.On("FindMessage", mock.Anything, "dm-1", "conv-1").Return(dm, nil)
	repo.On("SaveMessage", mock.Anything, dm).Return(nil)
	events.On("Publish", "chat:conv-1:messages:update", dm).Return()

	got, err := newService(repo, nil, events).UpdateMessage(context.Background(), &profile.Profile{ID: "p1"}, "conv-1", "dm-1", "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.True(t, got.Edited)
	assert.True(t, got.UpdatedAt.After(stale))
}
