package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// UserHandler exposes the dashboard's account management endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /admin/users with optional search and role query
// parameters. Accounts come back newest first; search matches email, full
// name or identifier.
func (h *UserHandler) ListUsers(c *gin.Context) {
	accounts, err := h.users.ListAccounts()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
		return
	}

	var role models.Role
	if raw := c.Query("role"); raw != "" {
		role = models.ParseRole(raw)
	}
	accounts = service.FilterAccounts(accounts, c.Query("search"), role)

	utils.Success(c, http.StatusOK, "Users retrieved", gin.H{
		"users": accounts,
		"count": len(accounts),
	})
}

// DeleteUser handles DELETE /admin/users/:id: removes the role assignment
// and the profile as one unit.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteAccount(c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrProfileNotFound) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		return
	}
	utils.Success(c, http.StatusOK, "User deleted", nil)
}
