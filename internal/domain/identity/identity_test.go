package identity

import (
	"testing"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Permission
		denied  []Permission
	}{
		{RoleAdmin, []Permission{PermissionSales, PermissionInventory, PermissionReports, PermissionSettings}, nil},
		{RoleIntern, []Permission{PermissionSales}, []Permission{PermissionInventory, PermissionReports, PermissionSettings}},
		{RoleSeller, []Permission{PermissionSales, PermissionReports}, []Permission{PermissionInventory, PermissionSettings}},
		{RoleStockist, []Permission{PermissionInventory}, []Permission{PermissionSales, PermissionReports, PermissionSettings}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, p := range tt.allowed {
				assert.True(t, tt.role.Can(p), "%s should grant %s", tt.role, p)
			}
			for _, p := range tt.denied {
				assert.False(t, tt.role.Can(p), "%s should deny %s", tt.role, p)
			}
		})
	}

	assert.False(t, Role("guest").Can(PermissionSales))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("vendedor")
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, r)

	r, err = ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("gerente")
	assert.Error(t, err)
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("caixa1", "secret", RoleIntern)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.True(t, u.VerifyPassword("secret"))
	assert.False(t, u.VerifyPassword("wrong"))

	_, err = NewUser("", "secret", RoleIntern)
	assert.True(t, shared.IsValidation(err))

	_, err = NewUser("x", "secret", Role("guest"))
	assert.True(t, shared.IsValidation(err))

	_, err = NewUser("x", "abc", RoleAdmin)
	assert.True(t, shared.IsValidation(err))
}

func TestSession_Require(t *testing.T) {
	s := Session{UserID: 1, Role: RoleStockist}
	assert.NoError(t, s.Require(PermissionInventory))
	assert.ErrorIs(t, s.Require(PermissionSales), shared.ErrForbidden)
	assert.ErrorIs(t, Session{}.Require(PermissionSales), shared.ErrUnauthorized)
}
