package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/request"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	out, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"token":    out.Token,
		"username": out.User.Username,
		"role":     out.User.Role,
	})
}
