package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
)

// MockIdeaRepository is a mock implementation of IdeaRepository.
type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) FindByID(ctx context.Context, id int64) (*model.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) List(ctx context.Context) ([]model.Idea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Idea), args.Error(1)
}

func (m *MockIdeaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestIdeaService_CreateIdea(t *testing.T) {
	mockRepo := new(MockIdeaRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Idea")).Return(nil)

	service := NewIdeaService(mockRepo, nil)
	before := time.Now().UnixMilli()
	idea, err := service.CreateIdea(context.Background(), "ship it", "Bob")
	after := time.Now().UnixMilli()

	assert.NoError(t, err)
	assert.Equal(t, "ship it", idea.Content)
	assert.Equal(t, "Bob", idea.Author)
	assert.GreaterOrEqual(t, idea.Timestamp, before)
	assert.LessOrEqual(t, idea.Timestamp, after)
	mockRepo.AssertExpectations(t)
}

func TestIdeaService_DeleteIdea(t *testing.T) {
	stored := &model.Idea{ID: 7, Content: "ship it", Author: "Bob"}

	tests := []struct {
		name          string
		actorName     string
		actorRole     string
		setupMock     func(*MockIdeaRepository)
		expectedError error
	}{
		{
			name:      "author deletes own idea",
			actorName: "Bob",
			actorRole: model.RoleUser,
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, int64(7)).Return(stored, nil)
				m.On("Delete", mock.Anything, int64(7)).Return(int64(1), nil)
			},
		},
		{
			name:      "admin deletes any idea",
			actorName: "Ada",
			actorRole: model.RoleAdmin,
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, int64(7)).Return(stored, nil)
				m.On("Delete", mock.Anything, int64(7)).Return(int64(1), nil)
			},
		},
		{
			name:      "non-author is rejected",
			actorName: "Carol",
			actorRole: model.RoleUser,
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, int64(7)).Return(stored, nil)
			},
			expectedError: apperrors.ErrNotIdeaOwner,
		},
		{
			name:      "unknown idea",
			actorName: "Bob",
			actorRole: model.RoleUser,
			setupMock: func(m *MockIdeaRepository) {
				m.On("FindByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrIdeaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockIdeaRepository)
			tt.setupMock(mockRepo)

			service := NewIdeaService(mockRepo, nil)
			err := service.DeleteIdea(context.Background(), 7, tt.actorName, tt.actorRole)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestIdeaService_ListIdeas(t *testing.T) {
	board := []model.Idea{
		{ID: 2, Content: "newer", Author: "Ada", Timestamp: 1700000001000},
		{ID: 1, Content: "older", Author: "Bob", Timestamp: 1700000000000},
	}

	mockRepo := new(MockIdeaRepository)
	mockRepo.On("List", mock.Anything).Return(board, nil)

	service := NewIdeaService(mockRepo, nil)
	ideas, err := service.ListIdeas(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, board, ideas)
	mockRepo.AssertExpectations(t)
}
