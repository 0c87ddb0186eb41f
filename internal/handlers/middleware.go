package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// userIdMiddleware accepts HTTP Basic credentials or a Bearer token and
// stores the caller's user id in the gin context.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Header("WWW-Authenticate", `Basic realm="secure-finance-manager"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	var (
		userID int
		err    error
	)
	switch parts[0] {
	case "Basic":
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}
		userID, err = h.services.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			h.log.Infow("auth_basic_failed", "username", username, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
	case "Bearer":
		var username string
		username, err = h.services.ParseToken(parts[1])
		if err == nil {
			// a token issued before a rename or delete no longer resolves
			userID, err = h.services.Resolve(username)
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// callerID returns the id stored by userIdMiddleware.
func callerID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
