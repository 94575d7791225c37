// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity from an Authorization: Bearer
// token. It never rejects a request: routes decide for themselves whether an
// identity is required, and a token in the request body takes precedence in
// the handlers.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/auth"
)

// UserIDKey is the Gin context key holding the verified uid.
const UserIDKey = "userID"

// BearerToken returns the token of an "Authorization: Bearer <token>" header
// value, or "" when the scheme is missing or different.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Identity verifies the bearer token, when one is sent, and stores the uid
// under UserIDKey. Verification failures are logged at debug level and the
// request continues anonymously.
func Identity(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" || v == nil {
			c.Next()
			return
		}
		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("bearer token rejected")
			c.Next()
			return
		}
		c.Set(UserIDKey, id.UID)
		c.Next()
	}
}

// UserID returns the uid stored by Identity (or a handler), or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
