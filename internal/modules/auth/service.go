package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/mail"
	"tutorhub/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

type Service struct {
	users   UserRepository
	mailer  mail.Mailer
	baseURL string
	now     func() time.Time
}

func NewService(users UserRepository, mailer mail.Mailer, baseURL string) *Service {
	return &Service{
		users:   users,
		mailer:  mailer,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Signup creates a local student account. Email uniqueness is enforced
// case-insensitively by the store; the duplicate maps to
// ErrEmailAlreadyExists without touching the first account.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		AuthProvider: domain.ProviderEmail,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login checks the password against the stored hash. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		// External-identity account without a local password.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// Profile re-reads the caller's own user row.
func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ExternalLogin finds or creates the account for a verified external
// identity. Matching order: provider id first, then email (linking an
// existing local account to the provider).
func (s *Service) ExternalLogin(ctx context.Context, identity GoogleIdentity) (*domain.User, error) {
	user, err := s.users.GetByGoogleID(ctx, identity.ID)
	if err == nil {
		user.PasswordHash = ""
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		user.GoogleID = identity.ID
		user.GoogleEmail = strings.ToLower(identity.Email)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			return nil, updateErr
		}
		user.PasswordHash = ""
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &domain.User{
		Name:         identity.Name,
		Email:        strings.ToLower(identity.Email),
		Role:         domain.RoleStudent,
		AuthProvider: domain.ProviderGoogle,
		GoogleID:     identity.ID,
		GoogleEmail:  strings.ToLower(identity.Email),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset stores a random token with a 1-hour expiry and
// emails the reset link. An unknown email reports success to avoid
// account enumeration; the caller cannot tell the difference.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>You are receiving this because a password reset was requested for your account.</p>"+
			"<p>Click the link to complete the process:</p><p><a href=%q>%s</a></p>"+
			"<p>If you did not request this, ignore this email and your password will remain unchanged.</p>",
		link, link,
	)
	mail.Dispatch(s.mailer, user.Email, "Password Reset", body)
	return nil
}

// ValidateResetToken reports whether a token is usable right now.
func (s *Service) ValidateResetToken(ctx context.Context, token string) error {
	if _, err := s.users.GetByResetToken(ctx, token, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// ResetPassword sets a new password for a valid, unexpired token and
// clears the token so it cannot be reused.
func (s *Service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	if req.Password != req.Confirm {
		return ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, string(hash))
}
