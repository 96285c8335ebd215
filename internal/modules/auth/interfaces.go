package auth

import (
	"context"
	"time"

	"tutorhub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}

// GoogleVerifier turns an OAuth callback code into a verified external
// identity. The HTTP implementation lives in google.go; tests inject a
// fake.
type GoogleVerifier interface {
	Verify(ctx context.Context, code string) (*GoogleIdentity, error)
}

type GoogleIdentity struct {
	ID    string
	Email string
	Name  string
}
