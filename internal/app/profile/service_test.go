package profile_test

import (
	"context"
	"errors"
	"testing"

	"discord-backend/internal/apperrors"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestCurrentReturnsExistingProfile(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}
	existing := &profile.Profile{ID: "p1", UserID: "user-1", Name: "Alice"}
	repo.On("FindByUserID", mock.Anything, "user-1").Return(existing, nil)

	got, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{UserID: "user-1", Name: "Renamed"})

	require.NoError(t, err)
	assert.Same(t, existing, got)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestCurrentProvisionsOnFirstSight(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}
	repo.On("FindByUserID", mock.Anything, "user-2").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(p *profile.Profile) bool {
		return p.UserID == "user-2" && p.Name == "Bob" && p.Email == "bob@example.com" && p.ImageURL == "http://img/bob.png"
	})).Return(&profile.Profile{ID: "p2", UserID: "user-2", Name: "Bob"}, nil)

	got, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{
		UserID:   "user-2",
		Name:     "Bob",
		Email:    "bob@example.com",
		ImageURL: "http://img/bob.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "p2", got.ID)
	repo.AssertExpectations(t)
}

func TestCurrentFallsBackToDefaultName(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}
	repo.On("FindByUserID", mock.Anything, "user-3").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(p *profile.Profile) bool {
		return p.Name == "User"
	})).Return(&profile.Profile{ID: "p3", UserID: "user-3", Name: "User"}, nil)

	got, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{UserID: "user-3"})

	require.NoError(t, err)
	assert.Equal(t, "User", got.Name)
	repo.AssertExpectations(t)
}

func TestCurrentWrapsRepositoryErrors(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}
	dbErr := errors.New("connection refused")
	repo.On("FindByUserID", mock.Anything, "user-4").Return(nil, dbErr)

	_, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{UserID: "user-4"})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestCurrentCreateFailure(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}
	dbErr := errors.New("unique violation")
	repo.On("FindByUserID", mock.Anything, "user-5").Return(nil, gorm.ErrRecordNotFound)
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{UserID: "user-5"})

	assert.ErrorIs(t, err, dbErr)
}

func TestCurrentRejectsEmptySubject(t *testing.T) {
	repo := &mocks.ProfileRepositoryMock{}

	_, err := profile.NewService(repo, zap.NewNop()).Current(context.Background(), profile.Identity{Name: "Nobody"})

	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthenticated))
	repo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}
