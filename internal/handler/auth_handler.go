package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// AuthHandler handles dashboard authentication.
type AuthHandler struct {
	auth *service.AdminAuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTooManyAttempts):
			utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, utils.ErrAccountInactive):
			utils.Error(c, http.StatusUnauthorized, "ACCOUNT_INACTIVE", "Account is inactive")
		default:
			utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", gin.H{"token": token})
}
