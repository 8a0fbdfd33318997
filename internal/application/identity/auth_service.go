// Package identity handles operator accounts and login.
package identity

import (
	"context"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(session identity.Session) (*auth.Token, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies the operator's password and issues a bearer token.
// Unknown usernames and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, invalidCredentials()
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Issue(identity.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeTransient, "Failed to generate authentication token", err)
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserDTO(user),
	}, nil
}

func invalidCredentials() error {
	return shared.WrapDomainError(shared.CodeUnauthorized, "Invalid username or password", shared.ErrUnauthorized)
}
