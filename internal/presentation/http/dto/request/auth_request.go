package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest represents an admin adding a register operator
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=1"`
	Role     string `json:"role" binding:"required,oneof=admin cashier"`
}

// ChangePasswordRequest represents a password change for an operator
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=1"`
}
