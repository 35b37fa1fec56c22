package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

// Middleware validates bearer tokens and stores the session identity in
// locals. Requests without a valid token are rejected.
func Middleware(secret string) fiber.Handler {
	return middleware(secret, true)
}

// OptionalMiddleware stores the session identity when a valid bearer token
// is present and lets anonymous requests through untouched, so the feed
// stays readable without a session. A present-but-invalid token is still
// rejected.
func OptionalMiddleware(secret string) fiber.Handler {
	return middleware(secret, false)
}

func middleware(secret string, required bool) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			if required {
				return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
			}
			return c.Next()
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
			return secretBytes, nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "token invalid")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("display_name", claims.DisplayName)
		c.Locals("avatar_url", claims.AvatarURL)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
