package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retaildash/internal/auth"
	"retaildash/internal/errors"
	"retaildash/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func newTestSigner() *auth.Signer {
	return auth.NewSigner("test-secret")
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login by name",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Name:         "alice",
					Email:        "alice@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "alice").Return(&model.User{
					ID:           1,
					Name:         "alice",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByLogin", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:          "missing username",
			username:      "",
			password:      "password123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name:          "missing password",
			username:      "alice",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestSigner())
			token, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Name)

				payload, err := newTestSigner().Verify(token)
				require.NoError(t, err)
				assert.Equal(t, user.Name, payload.Identity)
				assert.Less(t, time.Since(time.UnixMilli(payload.IssuedAtMs)), time.Second)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Unknown user and wrong password must be indistinguishable so responses
// cannot enumerate usernames.
func TestAuthService_LoginErrorsIndistinguishable(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByLogin", mock.Anything, "alice").Return(&model.User{
		ID: 1, Name: "alice", PasswordHash: string(hashed),
	}, nil)
	mockRepo.On("FindByLogin", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, newTestSigner())

	_, _, wrongPassErr := service.Login(context.Background(), "alice", "nope")
	_, _, unknownUserErr := service.Login(context.Background(), "ghost", "nope")

	assert.Equal(t, wrongPassErr, unknownUserErr)
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
}

func TestAuthService_ValidateSession(t *testing.T) {
	signer := newTestSigner()
	fresh, _ := signer.Issue("alice", "0", time.Now().UnixMilli())
	expired, _ := signer.Issue("alice", "0", time.Now().Add(-25*time.Hour).UnixMilli())
	forged, _ := auth.Encode("alice", "0", time.Now().UnixMilli())

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "valid token and existing user",
			token: fresh,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID: 1, Name: "alice", Email: "alice@example.com", IsAdmin: true,
				}, nil)
			},
		},
		{
			name:          "absent cookie",
			token:         "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrUnauthenticated,
		},
		{
			name:          "malformed token",
			token:         "garbage-token",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrUnauthenticated,
		},
		{
			name:          "forged unsigned token",
			token:         forged,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrUnauthenticated,
		},
		{
			name:          "expired token",
			token:         expired,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrTokenExpired,
		},
		{
			name:  "user deleted after issuance",
			token: fresh,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByName", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, signer)
			session, err := service.ValidateSession(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				require.NotNil(t, session)
				assert.Equal(t, "alice", session.Name)
				assert.Equal(t, "alice@example.com", session.Email)
				assert.True(t, session.IsAdmin)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	admin := &Session{UserID: 1, Name: "admin", IsAdmin: true}
	regular := &Session{UserID: 2, Name: "bob"}

	tests := []struct {
		name          string
		caller        *Session
		userID        uint
		newPassword   string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "admin resets another user",
			caller:      admin,
			userID:      2,
			newPassword: "abc123",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdatePassword", mock.Anything, uint(2), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:        "user resets own password",
			caller:      regular,
			userID:      2,
			newPassword: "abc123",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdatePassword", mock.Anything, uint(2), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:          "user may not reset someone else",
			caller:        regular,
			userID:        1,
			newPassword:   "abc123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "missing user id",
			caller:        admin,
			userID:        0,
			newPassword:   "abc123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name:          "missing password",
			caller:        admin,
			userID:        2,
			newPassword:   "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name:        "unknown target user",
			caller:      admin,
			userID:      99,
			newPassword: "abc123",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdatePassword", mock.Anything, uint(99), mock.AnythingOfType("string")).Return(gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, newTestSigner())
			err := service.ResetPassword(context.Background(), tt.caller, tt.userID, tt.newPassword)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// Resetting to "abc123" must persist a hash the new password verifies
// against and the old one does not.
func TestAuthService_ResetPasswordRoundTrip(t *testing.T) {
	var storedHash string
	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdatePassword", mock.Anything, uint(2), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	service := NewAuthService(mockRepo, newTestSigner())
	err := service.ResetPassword(context.Background(), &Session{UserID: 2, Name: "bob"}, 2, "abc123")
	require.NoError(t, err)
	require.NotEmpty(t, storedHash)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("abc123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("old-password")))
}
