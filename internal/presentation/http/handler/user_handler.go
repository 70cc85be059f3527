package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/request"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/response"
)

// UserHandler handles user management HTTP requests (admin only)
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	response.OK(c, "Users retrieved successfully", h.authService.ListUsers())
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username, password and a valid role are required")
		return
	}

	if err := h.authService.AddUser(c.Request.Context(), req.Username, req.Password, req.Role); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User added", nil)
}

// Delete handles DELETE /users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.authService.DeleteUser(c.Request.Context(), c.Param("username"), GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User deleted", nil)
}

// ChangePassword handles PUT /users/:username/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Password cannot be empty")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), c.Param("username"), req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed", nil)
}
