package controller

import "github.com/gin-gonic/gin"

// UserIDKey is the gin context key the identity middleware stores the
// authenticated user id under.
const UserIDKey = "userId"

// CurrentUserID returns the requester identity resolved by the identity
// middleware. Routes using it must be mounted behind RequireUser.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
