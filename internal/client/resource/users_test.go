package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ideahub/internal/client/api"
	"ideahub/internal/client/guard"
	"ideahub/internal/model"
)

// mockUserAPI is a mock implementation of UserAPI.
type mockUserAPI struct {
	mock.Mock
}

func (m *mockUserAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserAPI) RegisterUser(ctx context.Context, input api.RegisterInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *mockUserAPI) UpdateUserRole(ctx context.Context, email, role string) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

func (m *mockUserAPI) UpdateProfile(ctx context.Context, email, name, password string) error {
	args := m.Called(ctx, email, name, password)
	return args.Error(0)
}

func (m *mockUserAPI) DeleteUser(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func newUsersUnderTest(apiMock *mockUserAPI, sess *fakeSession, answer bool) (*Users, *recordingView[model.User], *scriptedPrompter, *noticeRecorder, *int) {
	view := &recordingView[model.User]{}
	prompt := &scriptedPrompter{answer: answer}
	notices := &noticeRecorder{}
	reloads := 0
	u := NewUsers(apiMock, sess, view, prompt, notices, func() { reloads++ })
	return u, view, prompt, notices, &reloads
}

func TestUsers_Create(t *testing.T) {
	roster := []model.User{
		{Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin},
		{Name: "Bob", Email: "bob@example.com", Role: model.RoleUser},
	}

	tests := []struct {
		name        string
		session     *fakeSession
		input       NewUserInput
		setupMock   func(*mockUserAPI)
		expectError bool
	}{
		{
			name:    "admin creates user and roster refreshes",
			session: adminSession(),
			input:   NewUserInput{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "user"},
			setupMock: func(m *mockUserAPI) {
				m.On("RegisterUser", mock.Anything, api.RegisterInput{
					Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "user",
				}).Return(nil)
				m.On("ListUsers", mock.Anything).Return(roster, nil)
			},
		},
		{
			name:        "non-admin is rejected before any call",
			session:     userSession("Bob", "bob@example.com"),
			input:       NewUserInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: "user"},
			setupMock:   func(m *mockUserAPI) {},
			expectError: true,
		},
		{
			name:        "invalid input never reaches the network",
			session:     adminSession(),
			input:       NewUserInput{Name: "Eve", Email: "not-an-email", Password: "secret1", Role: "user"},
			setupMock:   func(m *mockUserAPI) {},
			expectError: true,
		},
		{
			name:        "short password is rejected locally",
			session:     adminSession(),
			input:       NewUserInput{Name: "Eve", Email: "eve@example.com", Password: "abc", Role: "user"},
			setupMock:   func(m *mockUserAPI) {},
			expectError: true,
		},
		{
			name:    "server conflict leaves local state untouched",
			session: adminSession(),
			input:   NewUserInput{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "user"},
			setupMock: func(m *mockUserAPI) {
				m.On("RegisterUser", mock.Anything, mock.AnythingOfType("api.RegisterInput")).
					Return(&api.APIError{Status: 409, Message: "email already registered"})
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := new(mockUserAPI)
			tt.setupMock(apiMock)
			u, view, _, notices, _ := newUsersUnderTest(apiMock, tt.session, true)

			err := u.Create(context.Background(), tt.input)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, u.Roster())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, roster, u.Roster())
				assert.Equal(t, roster, view.last().Items)
			}
			assert.NotEmpty(t, notices.messages)
			apiMock.AssertExpectations(t)
		})
	}
}

func TestUsers_ChangeRole_ConfirmedThenRefetched(t *testing.T) {
	apiMock := new(mockUserAPI)
	apiMock.On("UpdateUserRole", mock.Anything, "bob@example.com", "admin").Return(nil)
	apiMock.On("ListUsers", mock.Anything).Return([]model.User{
		{Name: "Bob", Email: "bob@example.com", Role: model.RoleAdmin},
	}, nil)

	u, view, prompt, _, _ := newUsersUnderTest(apiMock, adminSession(), true)

	err := u.ChangeRole(context.Background(), "bob@example.com", "admin")
	assert.NoError(t, err)
	assert.Equal(t, 1, prompt.asked)

	// The displayed role comes from the refetch, not from the form value.
	assert.Equal(t, model.RoleAdmin, view.last().Items[0].Role)
	apiMock.AssertExpectations(t)
}

func TestUsers_ChangeRole_DeclineRestoresDisplayedValue(t *testing.T) {
	apiMock := new(mockUserAPI)
	apiMock.On("ListUsers", mock.Anything).Return([]model.User{
		{Name: "Bob", Email: "bob@example.com", Role: model.RoleUser},
	}, nil)

	u, view, prompt, _, _ := newUsersUnderTest(apiMock, adminSession(), false)

	err := u.ChangeRole(context.Background(), "bob@example.com", "admin")
	assert.NoError(t, err)
	assert.Equal(t, 1, prompt.asked)

	// No mutation call was issued, but the roster was refreshed so a
	// half-edited control snaps back to server truth.
	apiMock.AssertNotCalled(t, "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, model.RoleUser, view.last().Items[0].Role)
}

func TestUsers_ChangeRole_SelfIsRefused(t *testing.T) {
	apiMock := new(mockUserAPI)
	apiMock.On("ListUsers", mock.Anything).Return([]model.User{}, nil)

	u, _, prompt, notices, _ := newUsersUnderTest(apiMock, adminSession(), true)

	err := u.ChangeRole(context.Background(), "ada@example.com", "user")
	assert.ErrorIs(t, err, guard.ErrAccessDenied)
	assert.Equal(t, 0, prompt.asked)
	assert.Contains(t, notices.messages[0], "own role")
	apiMock.AssertNotCalled(t, "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsers_Delete(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		answer    bool
		setupMock func(*mockUserAPI)
		wantErr   error
		asked     int
	}{
		{
			name:   "confirmed delete refetches",
			target: "bob@example.com",
			answer: true,
			setupMock: func(m *mockUserAPI) {
				m.On("DeleteUser", mock.Anything, "bob@example.com").Return(nil)
				m.On("ListUsers", mock.Anything).Return([]model.User{}, nil)
			},
			asked: 1,
		},
		{
			name:      "declined delete is a no-op",
			target:    "bob@example.com",
			answer:    false,
			setupMock: func(m *mockUserAPI) {},
			asked:     1,
		},
		{
			name:      "self delete refused before prompt",
			target:    "ada@example.com",
			answer:    true,
			setupMock: func(m *mockUserAPI) {},
			wantErr:   guard.ErrAccessDenied,
			asked:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := new(mockUserAPI)
			tt.setupMock(apiMock)
			u, _, prompt, _, _ := newUsersUnderTest(apiMock, adminSession(), tt.answer)

			err := u.Delete(context.Background(), tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.asked, prompt.asked)
			apiMock.AssertExpectations(t)
		})
	}
}

func TestUsers_UpdateProfile_WritesThroughAndReloads(t *testing.T) {
	apiMock := new(mockUserAPI)
	apiMock.On("UpdateProfile", mock.Anything, "bob@example.com", "Robert", "").Return(nil)

	sess := userSession("Bob", "bob@example.com")
	u, _, _, _, reloads := newUsersUnderTest(apiMock, sess, true)

	err := u.UpdateProfile(context.Background(), "Robert", "")
	assert.NoError(t, err)

	// The cached identity reflects the confirmed server-side change and the
	// session-dependent UI was re-derived.
	assert.Equal(t, "Robert", sess.Current().Name)
	assert.Equal(t, 1, *reloads)
	apiMock.AssertExpectations(t)
}

func TestUsers_UpdateProfile_ServerRejectionKeepsLocalName(t *testing.T) {
	apiMock := new(mockUserAPI)
	apiMock.On("UpdateProfile", mock.Anything, "bob@example.com", "Robert", "").
		Return(&api.APIError{Status: 404, Message: "no such user"})

	sess := userSession("Bob", "bob@example.com")
	u, _, _, notices, reloads := newUsersUnderTest(apiMock, sess, true)

	err := u.UpdateProfile(context.Background(), "Robert", "")
	assert.Error(t, err)
	assert.Equal(t, "Bob", sess.Current().Name)
	assert.Equal(t, 0, *reloads)
	assert.Contains(t, notices.messages[0], "no such user")
}

func TestUsers_UpdateProfile_RequiresLogin(t *testing.T) {
	apiMock := new(mockUserAPI)
	u, _, _, _, _ := newUsersUnderTest(apiMock, &fakeSession{sess: model.Session{Role: model.RoleUser}}, true)

	err := u.UpdateProfile(context.Background(), "Ghost", "")
	assert.ErrorIs(t, err, guard.ErrAccessDenied)
	apiMock.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
