package identity

import "github.com/erp/pdv/internal/domain/shared"

// Session identifies the operator behind a request. It is resolved once at
// the edge and passed explicitly into every operation that records who did it.
type Session struct {
	UserID   int64
	Username string
	Role     Role
}

// Can reports whether the session's role grants perm
func (s Session) Can(perm Permission) bool {
	return s.Role.Can(perm)
}

// Require returns ErrForbidden unless the session grants perm
func (s Session) Require(perm Permission) error {
	if s.UserID <= 0 {
		return shared.ErrUnauthorized
	}
	if !s.Can(perm) {
		return shared.ErrForbidden
	}
	return nil
}
