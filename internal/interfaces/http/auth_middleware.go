package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/pkg/jwt"
)

// Locals keys set by AuthMiddleware.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware validates the Bearer JWT and stores the caller's identity in
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "인증 토큰이 필요합니다.")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "형식: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "인증 토큰이 필요합니다.")
		}
		userID, username, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "유효하지 않거나 만료된 토큰입니다.")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. admin passes every gate.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity.IsZero() {
			return fail(c, fiber.StatusUnauthorized, "인증이 필요합니다.")
		}
		if identity.Role == entity.RoleAdmin {
			return c.Next()
		}
		for _, r := range roles {
			if identity.Role == r {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "권한이 없습니다.")
	}
}

// GetIdentity returns the caller's identity from the context (after
// AuthMiddleware). Zero value when unauthenticated.
func GetIdentity(c *fiber.Ctx) domain.Identity {
	return domain.Identity{
		UserID:   localString(c, LocalUserID),
		Username: localString(c, LocalUsername),
		Role:     localString(c, LocalRole),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// requestMeta extracts client metadata for the activity log.
func requestMeta(c *fiber.Ctx) dto.RequestMeta {
	return dto.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}
