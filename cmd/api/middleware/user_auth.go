package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"veritas-ai/cmd/api/auth"
	"veritas-ai/logger"
)

const (
	// CtxUserID is the gin context key holding the caller's identity.
	CtxUserID = "user_id"
	CtxRole   = "role"
	// CtxAnonymous marks identities derived from the anonymous header.
	CtxAnonymous = "anonymous"

	headerAnonymousID = "X-Anonymous-Id"
)

// TokenParser verifies an access token and returns (uid, role).
type TokenParser interface {
	ParseAccessToken(token string) (string, string, error)
}

// RequireUser rejects requests without a valid JWT.
func RequireUser(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		uid, role, err := parser.ParseAccessToken(token)
		if err != nil {
			logger.Log.Warnf("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		c.Set(CtxUserID, uid)
		c.Set(CtxRole, role)
		c.Set(CtxAnonymous, false)

		c.Next()
	}
}

// OptionalUser resolves an identity without requiring sign-in: a valid JWT
// wins, otherwise the X-Anonymous-Id header identifies the caller. Voting
// needs a stable identity, signed in or not.
func OptionalUser(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := auth.BearerToken(c); err == nil {
			uid, role, parseErr := parser.ParseAccessToken(token)
			if parseErr != nil {
				// a presented but invalid token is still an auth failure
				auth.AbortWithUnauthorized(c, parseErr)
				return
			}
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, role)
			c.Set(CtxAnonymous, false)
			c.Next()
			return
		}

		anonID := c.GetHeader(headerAnonymousID)
		if anonID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing_identity"})
			return
		}
		c.Set(CtxUserID, "anon:"+anonID)
		c.Set(CtxRole, "")
		c.Set(CtxAnonymous, true)

		c.Next()
	}
}

// UserID reads the resolved identity from the gin context.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
