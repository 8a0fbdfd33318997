package identity

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/pdv/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User is an operator account
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	Role         Role
}

// NewUser creates a user with a hashed password
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewValidationError("Username cannot be empty")
	}
	if utf8.RuneCountInString(username) > 100 {
		return nil, shared.NewValidationError("Username cannot exceed 100 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Unknown role")
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Role:              role,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if len(password) < 4 {
		return shared.NewValidationError("Password must have at least 4 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("Password cannot exceed 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.WrapDomainError("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserRepository persists operator accounts
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
}
