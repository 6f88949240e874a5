package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "ideahub/internal/errors"
	"ideahub/internal/model"
)

func TestUserService_ListUsers(t *testing.T) {
	roster := []model.User{
		{Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin},
		{Name: "Bob", Email: "bob@example.com", Role: model.RoleUser},
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return(roster, nil)

	service := NewUserService(mockRepo, nil)
	users, err := service.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, roster, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateRole(t *testing.T) {
	tests := []struct {
		name          string
		actorEmail    string
		targetEmail   string
		role          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "admin promotes another user",
			actorEmail:  "ada@example.com",
			targetEmail: "bob@example.com",
			role:        model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "bob@example.com").
					Return(&model.User{Name: "Bob", Email: "bob@example.com", Role: model.RoleUser}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "changing own role is rejected",
			actorEmail:    "ada@example.com",
			targetEmail:   "ada@example.com",
			role:          model.RoleUser,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrSelfTarget,
		},
		{
			name:          "self check is case-insensitive",
			actorEmail:    "ada@example.com",
			targetEmail:   "Ada@Example.COM",
			role:          model.RoleUser,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrSelfTarget,
		},
		{
			name:        "unknown target",
			actorEmail:  "ada@example.com",
			targetEmail: "ghost@example.com",
			role:        model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			user, err := service.UpdateRole(context.Background(), tt.actorEmail, tt.targetEmail, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	existing := func() *model.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcryptCost)
		return &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: string(hash), Role: model.RoleUser}
	}

	t.Run("name only", func(t *testing.T) {
		user := existing()
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		service := NewUserService(mockRepo, nil)
		updated, err := service.UpdateProfile(context.Background(), "bob@example.com", "Robert", "")
		assert.NoError(t, err)
		assert.Equal(t, "Robert", updated.Name)

		// Untouched password still matches.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("oldpassword")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("password only", func(t *testing.T) {
		user := existing()
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		service := NewUserService(mockRepo, nil)
		updated, err := service.UpdateProfile(context.Background(), "bob@example.com", "", "newpassword")
		assert.NoError(t, err)
		assert.Equal(t, "Bob", updated.Name)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpassword")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo, nil)
		_, err := service.UpdateProfile(context.Background(), "ghost@example.com", "Ghost", "")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	tests := []struct {
		name          string
		actorEmail    string
		targetEmail   string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "admin deletes another user",
			actorEmail:  "ada@example.com",
			targetEmail: "bob@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("DeleteByEmail", mock.Anything, "bob@example.com").Return(int64(1), nil)
			},
		},
		{
			name:          "deleting own account is rejected",
			actorEmail:    "ada@example.com",
			targetEmail:   "ADA@example.com",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrSelfTarget,
		},
		{
			name:        "unknown target",
			actorEmail:  "ada@example.com",
			targetEmail: "ghost@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("DeleteByEmail", mock.Anything, "ghost@example.com").Return(int64(0), nil)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			err := service.DeleteUser(context.Background(), tt.actorEmail, tt.targetEmail)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
