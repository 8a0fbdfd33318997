package identity

import "fmt"

// Permission is an area of the application a role may use
type Permission string

const (
	PermissionSales     Permission = "sales"
	PermissionInventory Permission = "inventory"
	PermissionReports   Permission = "reports"
	PermissionSettings  Permission = "settings"
)

// Role is an operator profile
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleIntern   Role = "intern"   // estagiário: checkout only
	RoleSeller   Role = "seller"   // vendedor: checkout and reports
	RoleStockist Role = "stockist" // estoquista: stock only
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:    {PermissionSales, PermissionInventory, PermissionReports, PermissionSettings},
	RoleIntern:   {PermissionSales},
	RoleSeller:   {PermissionSales, PermissionReports},
	RoleStockist: {PermissionInventory},
}

var legacyRoles = map[string]Role{
	"estagiario": RoleIntern,
	"estagiário": RoleIntern,
	"vendedor":   RoleSeller,
	"estoquista": RoleStockist,
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions lists what the role may access
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Can reports whether the role grants perm
func (r Role) Can(perm Permission) bool {
	for _, p := range rolePermissions[r] {
		if p == perm {
			return true
		}
	}
	return false
}

// ParseRole accepts current and legacy role names
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if r.IsValid() {
		return r, nil
	}
	if legacy, ok := legacyRoles[s]; ok {
		return legacy, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
