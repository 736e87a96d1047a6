package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type BroadcasterMock struct {
	mock.Mock
}

func (m *BroadcasterMock) Publish(event string, data interface{}) {
	m.Called(event, data)
}

type AuditorMock struct {
	mock.Mock
}

func (m *AuditorMock) Emit(ctx context.Context, action, profileID string, payload map[string]any) {
	m.Called(ctx, action, profileID, payload)
}
