package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shedstock-backend/internal/domain"
)

type mockTokenManager struct {
	mock.Mock
}

func (m *mockTokenManager) GenerateToken(user *domain.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
func (m *mockTokenManager) ValidateToken(tokenString string) (domain.Actor, error) {
	args := m.Called(tokenString)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func TestSignUpHashesPasswordAndNormalizesNames(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, new(mockTokenManager))

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, sql.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Ana" && u.Surname == "Gomez" && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
	})).Return(nil)

	user, err := svc.SignUp(context.Background(), "ANA", "gomez", "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ana Gomez", user.DisplayName())
}

func TestSignUpDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, new(mockTokenManager))

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&domain.User{ID: 1, Email: "ana@example.com", Status: domain.UserStatusActive}, nil).Once()
	_, err := svc.SignUp(context.Background(), "Ana", "Gomez", "ana@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&domain.User{ID: 1, Email: "ana@example.com", Status: domain.UserStatusInactive}, nil).Once()
	_, err = svc.SignUp(context.Background(), "Ana", "Gomez", "ana@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLogIn(t *testing.T) {
	userRepo := new(MockUserRepo)
	tm := new(mockTokenManager)
	svc := NewAuthService(userRepo, tm)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 1, Email: "ana@example.com", Password: string(hashed), Status: domain.UserStatusActive}

	userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	tm.On("GenerateToken", user).Return("signed-token", nil)

	token, err := svc.LogIn(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)

	_, err = svc.LogIn(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, sql.ErrNoRows)
	_, err = svc.LogIn(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLogInDeactivatedAccount(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, new(mockTokenManager))

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "old@example.com").
		Return(&domain.User{ID: 2, Password: string(hashed), Status: domain.UserStatusInactive}, nil)

	_, err = svc.LogIn(context.Background(), "old@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
