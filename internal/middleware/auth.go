package middleware

import (
	"net/http"

	"cbots-backend/config"
	"cbots-backend/internal/models"
	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// HeaderExternalUID carries the gateway-authenticated account handle when
// AUTH_MODE=external. The handle is trusted verbatim as the account key.
const (
	HeaderExternalUID   = "X-Auth-UID"
	HeaderExternalName  = "X-Auth-Name"
	HeaderExternalEmail = "X-Auth-Email"
)

// AuthMiddleware resolves the calling account through the configured identity
// provider and stores it in the context under "user".
func AuthMiddleware() gin.HandlerFunc {
	return requireUser(false)
}

func requireUser(adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := config.LoadConfig()
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to load configuration"))
			c.Abort()
			return
		}

		var user models.User
		if cfg.AuthMode == "external" {
			user, err = resolveExternalUser(c)
		} else {
			user, err = resolveTokenUser(c)
		}
		if err != nil {
			// resolve* already wrote the response
			c.Abort()
			return
		}

		if user.Status == models.UserStatusBlocked {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Your account has been blocked"))
			c.Abort()
			return
		}

		if adminOnly && user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func resolveExternalUser(c *gin.Context) (models.User, error) {
	uid := c.GetHeader(HeaderExternalUID)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Missing identity header"))
		return models.User{}, errUnauthorized
	}

	user, err := services.GetOrCreateExternalUser(uid, c.GetHeader(HeaderExternalName), c.GetHeader(HeaderExternalEmail))
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Could not resolve account"))
		return models.User{}, errUnauthorized
	}
	return *user, nil
}

func resolveTokenUser(c *gin.Context) (models.User, error) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return models.User{}, errUnauthorized
	}

	isDenylisted, err := services.IsDenylisted(tokenString)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check token status"))
		return models.User{}, errUnauthorized
	}
	if isDenylisted {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Token has been revoked"))
		return models.User{}, errUnauthorized
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
		return models.User{}, errUnauthorized
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid user ID in token"))
		return models.User{}, errUnauthorized
	}

	user, err := services.FindUserByID(uint(userIDFloat))
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
		return models.User{}, errUnauthorized
	}
	return user, nil
}
