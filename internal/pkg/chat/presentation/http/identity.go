package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oy2/quicktalk/internal/pkg/chat/presentation/controller"
)

// RequireUser resolves the authenticated user from the X-User-ID header set
// by the upstream auth layer and stores it in the request context. The chat
// core treats this identity as opaque; credential checks happen upstream.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthenticated"})
			return
		}
		c.Set(controller.UserIDKey, id)
		c.Next()
	}
}
