package persistence

import (
	"context"
	"testing"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, username string) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, "1234", identity.RoleSeller)
	require.NoError(t, err)
	return u
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	u := newUser(t, "caixa1")
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByUsername(ctx, " caixa1 ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.True(t, found.VerifyPassword("1234"))
	assert.Equal(t, identity.RoleSeller, found.Role)

	err = repo.Create(ctx, newUser(t, "caixa1"))
	assert.Equal(t, shared.CodeAlreadyExists, shared.ErrorCode(err))

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
