package auth

import (
	"errors"
	"net/http"
	"time"

	"cbots-backend/internal/services"
	"cbots-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// Register creates an unverified account and sends the verification token.
func Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	_, err := services.RegisterUser(req.Name, req.Email, req.Password, req.ReferralCode)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to register"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Registration successful! Check your email to activate your account.", nil))
}

// VerifyEmail activates the account and credits the signup bonus.
func VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.VerifyEmail(req.Token); err != nil {
		if errors.Is(err, services.ErrInvalidVerification) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to verify email"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Email verified successfully! You can now log in.", nil))
}

func Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := services.LoginUser(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrEmailNotVerified), errors.Is(err, services.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to log in"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", LoginResponse{
		Token: token,
		Role:  user.Role,
	}))
}

// Logout denylists the presented token for the remainder of its lifetime.
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	if err := services.AddToDenylist(tokenString, 24*time.Hour); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to log out"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out", nil))
}
