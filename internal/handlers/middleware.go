package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "userId"

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// userIdMiddleware rejects requests without a valid session.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	token, ok := bearerToken(header)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(userCtxKey, userId)
	c.Next()
}

// callerMiddleware resolves the caller when a valid session is presented and
// otherwise lets the request through as anonymous.
func (h *Handler) callerMiddleware(c *gin.Context) {
	if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
		userId, err := h.services.ParseToken(token)
		switch {
		case err == nil:
			c.Set(userCtxKey, userId)
		case h.log != nil:
			h.log.Debugw("caller_token_rejected", "err", err)
		}
	}
	c.Next()
}

// callerID returns the resolved caller, or 0 for anonymous requests.
func callerID(c *gin.Context) int {
	return c.GetInt(userCtxKey)
}
