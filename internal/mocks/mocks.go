package mocks

import (
	"context"

	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/conversation"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"

	"github.com/stretchr/testify/mock"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepositoryMock) FindInChannel(ctx context.Context, id, channelID string) (*message.Message, error) {
	args := m.Called(ctx, id, channelID)
	var msg *message.Message
	if val := args.Get(0); val != nil {
		msg = val.(*message.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Save(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepositoryMock) ListByChannel(ctx context.Context, channelID, cursor string, limit int) ([]*message.Message, error) {
	args := m.Called(ctx, channelID, cursor, limit)
	var list []*message.Message
	if val := args.Get(0); val != nil {
		list = val.([]*message.Message)
	}
	return list, args.Error(1)
}

type MembersMock struct {
	mock.Mock
}

func (m *MembersMock) FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*member.Member, error) {
	args := m.Called(ctx, profileID, serverID)
	var mem *member.Member
	if val := args.Get(0); val != nil {
		mem = val.(*member.Member)
	}
	return mem, args.Error(1)
}

func (m *MembersMock) FindInServer(ctx context.Context, id, serverID string) (*member.Member, error) {
	args := m.Called(ctx, id, serverID)
	var mem *member.Member
	if val := args.Get(0); val != nil {
		mem = val.(*member.Member)
	}
	return mem, args.Error(1)
}

type ChannelsMock struct {
	mock.Mock
}

func (m *ChannelsMock) FindInServer(ctx context.Context, id, serverID string) (*channel.Channel, error) {
	args := m.Called(ctx, id, serverID)
	var ch *channel.Channel
	if val := args.Get(0); val != nil {
		ch = val.(*channel.Channel)
	}
	return ch, args.Error(1)
}

type ConversationRepositoryMock struct {
	mock.Mock
}

func (m *ConversationRepositoryMock) FindBetween(ctx context.Context, memberA, memberB string) (*conversation.Conversation, error) {
	args := m.Called(ctx, memberA, memberB)
	var conv *conversation.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(*conversation.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) Create(ctx context.Context, conv *conversation.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) FindByID(ctx context.Context, id string) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	var conv *conversation.Conversation
	if val := args.Get(0); val != nil {
		conv = val.(*conversation.Conversation)
	}
	return conv, args.Error(1)
}

func (m *ConversationRepositoryMock) CreateMessage(ctx context.Context, msg *conversation.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) FindMessage(ctx context.Context, id, conversationID string) (*conversation.DirectMessage, error) {
	args := m.Called(ctx, id, conversationID)
	var msg *conversation.DirectMessage
	if val := args.Get(0); val != nil {
		msg = val.(*conversation.DirectMessage)
	}
	return msg, args.Error(1)
}

func (m *ConversationRepositoryMock) SaveMessage(ctx context.Context, msg *conversation.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ConversationRepositoryMock) ListMessages(ctx context.Context, conversationID, cursor string, limit int) ([]*conversation.DirectMessage, error) {
	args := m.Called(ctx, conversationID, cursor, limit)
	var list []*conversation.DirectMessage
	if val := args.Get(0); val != nil {
		list = val.([]*conversation.DirectMessage)
	}
	return list, args.Error(1)
}

type ServerRepositoryMock struct {
	mock.Mock
}

func (m *ServerRepositoryMock) Create(ctx context.Context, srv *server.Server) error {
	args := m.Called(ctx, srv)
	return args.Error(0)
}

func (m *ServerRepositoryMock) ListForProfile(ctx context.Context, profileID string) ([]*server.Server, error) {
	args := m.Called(ctx, profileID)
	var list []*server.Server
	if val := args.Get(0); val != nil {
		list = val.([]*server.Server)
	}
	return list, args.Error(1)
}

func (m *ServerRepositoryMock) FirstForProfile(ctx context.Context, profileID string) (*server.Server, error) {
	args := m.Called(ctx, profileID)
	return serverArg(args, 0), args.Error(1)
}

func (m *ServerRepositoryMock) FindByID(ctx context.Context, id string) (*server.Server, error) {
	args := m.Called(ctx, id)
	return serverArg(args, 0), args.Error(1)
}

func (m *ServerRepositoryMock) FindWithDetails(ctx context.Context, id string) (*server.Server, error) {
	args := m.Called(ctx, id)
	return serverArg(args, 0), args.Error(1)
}

func (m *ServerRepositoryMock) FindByInviteCode(ctx context.Context, code string) (*server.Server, error) {
	args := m.Called(ctx, code)
	return serverArg(args, 0), args.Error(1)
}

func (m *ServerRepositoryMock) MemberRole(ctx context.Context, serverID, profileID string) (member.Role, error) {
	args := m.Called(ctx, serverID, profileID)
	role, _ := args.Get(0).(member.Role)
	return role, args.Error(1)
}

func (m *ServerRepositoryMock) Update(ctx context.Context, id, name, imageURL string) error {
	args := m.Called(ctx, id, name, imageURL)
	return args.Error(0)
}

func (m *ServerRepositoryMock) UpdateInviteCode(ctx context.Context, id, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *ServerRepositoryMock) AddMember(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *ServerRepositoryMock) RemoveMember(ctx context.Context, serverID, profileID string) error {
	args := m.Called(ctx, serverID, profileID)
	return args.Error(0)
}

func (m *ServerRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func serverArg(args mock.Arguments, i int) *server.Server {
	if val := args.Get(i); val != nil {
		return val.(*server.Server)
	}
	return nil
}

type ProfileRepositoryMock struct {
	mock.Mock
}

func (m *ProfileRepositoryMock) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	var p *profile.Profile
	if val := args.Get(0); val != nil {
		p = val.(*profile.Profile)
	}
	return p, args.Error(1)
}

func (m *ProfileRepositoryMock) CreateIfAbsent(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	args := m.Called(ctx, p)
	var stored *profile.Profile
	if val := args.Get(0); val != nil {
		stored = val.(*profile.Profile)
	}
	return stored, args.Error(1)
}
