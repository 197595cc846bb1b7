package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/errors"
)

// SessionCookie is the cookie checked when no Authorization header is sent
const SessionCookie = "access_token"

// TokenVerifier resolves a session token to a user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth resolves the caller from a Bearer token or the session cookie
// and stores the user id under UserIDKey. Unauthenticated requests get 401.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verifier.Verify(sessionToken(c))
		if err != nil {
			_ = c.Error(err)
			HandleError(c, errors.NewUnauthorizedError("Unauthorized"))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

// UserID returns the authenticated caller set by RequireAuth
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
