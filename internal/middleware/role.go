package middleware

import (
	"net/http"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/flash"

	"github.com/gin-gonic/gin"
)

// Role gates. An anonymous caller is sent to the login page; an
// authenticated caller with the wrong role is sent to their own role's
// home view, not to a generic error page. Both refusals attach a
// one-shot flash notice for the next rendered page.

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			flash.Error(c, "Please login to continue.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole(domain.RoleAdmin, "Access denied. Admins only.")
}

func RequireWriter() gin.HandlerFunc {
	return requireRole(domain.RoleWriter, "Access denied. Tutors only.")
}

func RequireStudent() gin.HandlerFunc {
	return requireRole(domain.RoleStudent, "Access denied. Students only.")
}

func requireRole(required domain.Role, denied string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			flash.Error(c, "Please login first.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		if user.Role != required {
			flash.Error(c, denied)
			c.Redirect(http.StatusSeeOther, user.Role.HomePath())
			c.Abort()
			return
		}

		c.Next()
	}
}
