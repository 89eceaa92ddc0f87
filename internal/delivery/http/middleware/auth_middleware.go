package middleware

import (
	"errors"
	"strings"

	"skillboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey     = "user_id"
	CtxEmailKey      = "email"
	CtxEmployeeIDKey = "employee_id"
	CtxIsAdminKey    = "is_admin"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxEmployeeIDKey, claims.EmployeeID)
		c.Locals(CtxIsAdminKey, claims.IsAdmin)

		return c.Next()
	}
}

// RequireAdmin gates admin routes. It assumes Middleware already ran on the
// group.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !IsAdminFromCtx(c) {
			return NewAppError(fiber.StatusForbidden, "Admin access required", nil, nil)
		}
		return c.Next()
	}
}

func UserIDFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}

// EmployeeIDFromCtx returns the employee the caller is linked to. Accounts
// without an employee link (pure admin accounts) return false.
func EmployeeIDFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	ref, ok := c.Locals(CtxEmployeeIDKey).(*uuid.UUID)
	if !ok || ref == nil || *ref == uuid.Nil {
		return uuid.Nil, false
	}
	return *ref, true
}

func IsAdminFromCtx(c fiber.Ctx) bool {
	isAdmin, ok := c.Locals(CtxIsAdminKey).(bool)
	return ok && isAdmin
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
