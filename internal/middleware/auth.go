package middleware

import (
	"tutorhub/internal/domain"
	jwtsvc "tutorhub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed identity payload.
// Absence of the cookie (or an invalid token) means anonymous.
const SessionCookie = "session"

// Identity is the session-bound caller every gate and handler sees.
type Identity struct {
	ID            int64
	Name          string
	Email         string
	Role          domain.Role
	WalletBalance float64
	AuthProvider  domain.AuthProvider
}

const identityKey = "identity"

// Session resolves the session cookie into an Identity and stores it in
// the request context. It never refuses a request by itself; the role
// gates do that.
func Session(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			// Unknown role fails closed: treat as anonymous.
			c.Next()
			return
		}

		c.Set(identityKey, &Identity{
			ID:            claims.UserID,
			Name:          claims.Name,
			Email:         claims.Email,
			Role:          role,
			WalletBalance: claims.WalletBalance,
			AuthProvider:  domain.AuthProvider(claims.AuthProvider),
		})
		c.Next()
	}
}

// CurrentUser returns the authenticated identity, or nil for anonymous.
func CurrentUser(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return id
}
