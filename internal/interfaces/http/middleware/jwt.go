package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/auth"
	"github.com/erp/pdv/internal/infrastructure/logger"
	"github.com/erp/pdv/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session context keys
const (
	SessionKey    = "session"
	OperatorIDKey = "operator_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// SessionParser resolves a bearer token into the operator session
type SessionParser interface {
	Parse(token string) (identity.Session, error)
}

// SessionAuth validates the bearer token and stores the operator session in
// the gin context. Requests without a valid token get 401.
func SessionAuth(parser SessionParser, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		session, err := parser.Parse(token)
		if err != nil {
			if log != nil {
				log.Debug("Token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			}
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		c.Set(SessionKey, session)
		c.Set(OperatorIDKey, session.UserID)
		ctx, _ := logger.WithOperatorID(c.Request.Context(), logger.FromContext(c.Request.Context()), session.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetSession returns the operator session stored by SessionAuth
func GetSession(c *gin.Context) (identity.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return identity.Session{}, false
	}
	s, ok := v.(identity.Session)
	return s, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(shared.CodeUnauthorized, message, getRequestID(c)))
}
