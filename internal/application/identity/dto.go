package identity

import (
	"time"

	"github.com/erp/pdv/internal/domain/identity"
)

// LoginInput contains the input for operator login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserDTO   `json:"user"`
}

// CreateUserInput contains input for creating an operator account
type CreateUserInput struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=4,max=72"`
	Role     string `json:"role" binding:"required"`
}

// UserFilter represents filter options for the user list
type UserFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserDTO represents an operator in API responses
type UserDTO struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserDTO(user *identity.User) UserDTO {
	perms := user.Role.Permissions()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		Permissions: names,
		CreatedAt:   user.CreatedAt,
	}
}
