package auth

import (
	"context"
	"testing"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/mail"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	args := m.Called(ctx, userID, token, expires)
	return args.Error(0)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func newTestService(users UserRepository) *Service {
	return NewService(users, mail.NopMailer{}, "http://localhost:8080")
}

func TestSignup_PasswordLength(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestService(users)

	// 7 characters: rejected with the length-specific error.
	_, err := svc.Signup(context.Background(), SignupRequest{
		Name: "A", Email: "a@example.com", Password: "1234567",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// 8 characters: accepted.
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	user, err := svc.Signup(context.Background(), SignupRequest{
		Name: "A", Email: "a@example.com", Password: "12345678",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Empty(t, user.PasswordHash)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)
	svc := newTestService(users)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name: "B", Email: "Taken@Example.com", Password: "longenough",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignup_LowercasesEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "mixed@example.com"
	})).Return(nil)
	svc := newTestService(users)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name: "C", Email: " MiXeD@Example.Com ", Password: "longenough",
	})
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &domain.User{
		ID: 7, Email: "u@example.com", PasswordHash: string(hash),
		Role: domain.RoleStudent, WalletBalance: 25,
	}

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "u@example.com").Return(stored, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
	svc := newTestService(users)

	user, err := svc.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExternalLogin_CreatesStudentOnFirstLogin(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByGoogleID", mock.Anything, "g-123").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleStudent && u.AuthProvider == domain.ProviderGoogle && u.GoogleID == "g-123"
	})).Return(nil)
	svc := newTestService(users)

	user, err := svc.ExternalLogin(context.Background(), GoogleIdentity{ID: "g-123", Email: "new@example.com", Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	users.AssertExpectations(t)
}

func TestExternalLogin_LinksExistingLocalAccount(t *testing.T) {
	existing := &domain.User{ID: 9, Email: "old@example.com", Role: domain.RoleStudent, AuthProvider: domain.ProviderEmail}

	users := new(MockUserRepository)
	users.On("GetByGoogleID", mock.Anything, "g-9").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "old@example.com").Return(existing, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 9 && u.GoogleID == "g-9"
	})).Return(nil)
	svc := newTestService(users)

	user, err := svc.ExternalLogin(context.Background(), GoogleIdentity{ID: "g-9", Email: "old@example.com", Name: "Old"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	users.AssertExpectations(t)
}

func TestResetPassword(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	stored := &domain.User{ID: 3, Email: "r@example.com"}

	users := new(MockUserRepository)
	users.On("GetByResetToken", mock.Anything, "good-token", now).Return(stored, nil)
	users.On("GetByResetToken", mock.Anything, "stale-token", now).Return(nil, gorm.ErrRecordNotFound)
	users.On("ResetPassword", mock.Anything, int64(3), mock.Anything).Return(nil)

	svc := newTestService(users)
	svc.now = func() time.Time { return now }

	err := svc.ResetPassword(context.Background(), "good-token", ResetPasswordRequest{Password: "newpassword", Confirm: "different"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = svc.ResetPassword(context.Background(), "stale-token", ResetPasswordRequest{Password: "newpassword", Confirm: "newpassword"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	err = svc.ResetPassword(context.Background(), "good-token", ResetPasswordRequest{Password: "newpassword", Confirm: "newpassword"})
	assert.NoError(t, err)
	users.AssertExpectations(t)
}
