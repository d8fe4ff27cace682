package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errUnauthorized = errors.New("unauthorized")

// AdminAuthMiddleware validates that the caller has admin privileges.
func AdminAuthMiddleware() gin.HandlerFunc {
	return requireUser(true)
}
