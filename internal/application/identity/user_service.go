package identity

import (
	"context"
	"strings"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles operator account management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates an operator account. Legacy role names are accepted.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	role, err := identity.ParseRole(strings.TrimSpace(input.Role))
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(role)))

	dto := toUserDTO(user)
	return &dto, nil
}

// GetByID retrieves an operator by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// List lists operators by username
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]UserDTO, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "username"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = strings.TrimSpace(filter.Search)
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	return out, nil
}

// EnsureAdmin creates the bootstrap admin when the store has no operators
// yet. It returns true when an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}
	if password == "" {
		s.logger.Warn("No operators exist and no admin password is configured")
		return false, nil
	}

	if _, err := s.Create(ctx, CreateUserInput{
		Username: username,
		Password: password,
		Role:     string(identity.RoleAdmin),
	}); err != nil {
		return false, err
	}
	return true, nil
}
