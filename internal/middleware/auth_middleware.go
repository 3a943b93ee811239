package middleware

import (
	"context"
	"strings"

	"github.com/fadilmartias/careers/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// TokenLocal is the fiber.Ctx local holding the verified session token.
const TokenLocal = "admin_token"

type Authorizer interface {
	Authorize(ctx context.Context, token string) error
}

// RequireAdmin only lets requests through that carry a live admin session
// as a bearer token.
func RequireAdmin(auth Authorizer, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if err := auth.Authorize(c.UserContext(), token); err != nil {
			return util.AppErrorResponse(c, log, err)
		}
		c.Locals(TokenLocal, token)
		return c.Next()
	}
}

func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
