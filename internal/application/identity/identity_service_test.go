package identity

import (
	"context"
	"testing"
	"time"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/auth"
	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 5
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func newUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, password, role)
	require.NoError(t, err)
	u.ID = 3
	return u
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	jwtSvc := auth.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "pdv", Expiration: time.Hour})
	svc := NewAuthService(repo, jwtSvc, zap.NewNop())

	ana := newUser(t, "ana", "s3nha", identity.RoleSeller)
	repo.On("FindByUsername", ctx, "ana").Return(ana, nil)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginInput{Username: "ana", Password: "s3nha"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, []string{"sales", "reports"}, result.User.Permissions)

		session, err := jwtSvc.Parse(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(3), session.UserID)
		assert.Equal(t, identity.RoleSeller, session.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Username: "ana", Password: "errada"})
		assert.Equal(t, shared.CodeUnauthorized, shared.ErrorCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "x"})
		assert.Equal(t, shared.CodeUnauthorized, shared.ErrorCode(err))
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy role name", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("FindByUsername", ctx, "joao").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		dto, err := svc.Create(ctx, CreateUserInput{Username: "joao", Password: "1234", Role: "estoquista"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), dto.ID)
		assert.Equal(t, "stockist", dto.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("FindByUsername", ctx, "ana").Return(&identity.User{Username: "ana"}, nil)

		_, err := svc.Create(ctx, CreateUserInput{Username: "ana", Password: "1234", Role: "seller"})
		assert.Equal(t, shared.CodeAlreadyExists, shared.ErrorCode(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		_, err := svc.Create(ctx, CreateUserInput{Username: "x", Password: "1234", Role: "gerente"})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates first admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("FindAll", ctx, mock.Anything).Return([]identity.User{}, nil)
		repo.On("FindByUsername", ctx, "admin").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Role == identity.RoleAdmin
		})).Return(nil)

		created, err := svc.EnsureAdmin(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("operators already exist", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("FindAll", ctx, mock.Anything).Return([]identity.User{{Username: "ana"}}, nil)

		created, err := svc.EnsureAdmin(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
