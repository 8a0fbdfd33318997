package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translateError maps store errors onto the domain taxonomy:
// missing rows become NOT_FOUND, unique and foreign-key violations become
// constraint errors, lost connections become TRANSIENT. Anything else is
// returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.WrapDomainError(shared.CodeAlreadyExists, "A record with the same unique value already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.WrapDomainError(shared.CodeConstraintViolation, "Referenced record does not exist or is still in use", err)
	case isTransient(err):
		return shared.WrapDomainError(shared.CodeTransient, "Store temporarily unavailable", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "23":
			return shared.WrapDomainError(shared.CodeConstraintViolation, pgErr.Message, err)
		case "08", "53", "57":
			return shared.WrapDomainError(shared.CodeTransient, "Store temporarily unavailable", err)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return shared.WrapDomainError(shared.CodeAlreadyExists, "A record with the same unique value already exists", err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "constraint failed"):
		return shared.WrapDomainError(shared.CodeConstraintViolation, "Write rejected by a store constraint", err)
	case strings.Contains(msg, "database is locked"):
		return shared.WrapDomainError(shared.CodeTransient, "Store temporarily unavailable", err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
