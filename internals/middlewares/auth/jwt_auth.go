package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	LocClaims = "jwt_claims"
	LocUserID = "user_id"
	LocRole   = "role"
)

type AuthJWTOpts struct {
	Secret              string
	Disabled            bool // local development only
	AllowCookieFallback bool // read sb-access-token when no bearer token is sent
}

// AuthJWT verifies Supabase access tokens (HS256, signed with the project
// JWT secret) and stores the caller in locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		if o.Disabled {
			c.Locals(LocUserID, "dev")
			c.Locals(LocRole, "admin")
			return c.Next()
		}
		if secret == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication is not configured")
		}

		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("sb-access-token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}
		c.Locals(LocClaims, claims)

		userID := strClaim(claims, "sub")
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no subject")
		}
		c.Locals(LocUserID, userID)

		role := strClaim(claims, "role")
		if meta, ok := claims["app_metadata"].(map[string]any); ok {
			if r, ok := meta["role"].(string); ok && strings.TrimSpace(r) != "" {
				role = strings.TrimSpace(r)
			}
		}
		c.Locals(LocRole, role)

		return c.Next()
	}
}

// UserID returns the authenticated subject, or "" outside AuthJWT.
func UserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocUserID).(string)
	return s
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
