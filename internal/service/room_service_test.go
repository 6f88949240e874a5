package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
)

// MockRoomRepository is a mock implementation of RoomRepository.
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id int64) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]model.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *model.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestRoomService_CreateRoom(t *testing.T) {
	mockRepo := new(MockRoomRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Room")).Return(nil)

	service := NewRoomService(mockRepo, nil)
	room, err := service.CreateRoom(context.Background(), "General")
	assert.NoError(t, err)
	assert.Equal(t, "General", room.Name)
	mockRepo.AssertExpectations(t)
}

func TestRoomService_RenameRoom(t *testing.T) {
	t.Run("existing room", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.Room{ID: 1, Name: "General"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Room")).Return(nil)

		service := NewRoomService(mockRepo, nil)
		room, err := service.RenameRoom(context.Background(), 1, "Announcements")
		assert.NoError(t, err)
		assert.Equal(t, "Announcements", room.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewRoomService(mockRepo, nil)
		_, err := service.RenameRoom(context.Background(), 9, "Ghost")
		assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
	})
}

func TestRoomService_DeleteRoom(t *testing.T) {
	t.Run("existing room", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("Delete", mock.Anything, int64(1)).Return(int64(1), nil)

		service := NewRoomService(mockRepo, nil)
		assert.NoError(t, service.DeleteRoom(context.Background(), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown room", func(t *testing.T) {
		mockRepo := new(MockRoomRepository)
		mockRepo.On("Delete", mock.Anything, int64(9)).Return(int64(0), nil)

		service := NewRoomService(mockRepo, nil)
		assert.ErrorIs(t, service.DeleteRoom(context.Background(), 9), apperrors.ErrRoomNotFound)
	})
}
