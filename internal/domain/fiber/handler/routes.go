package handler

import (
	"errors"

	"github.com/fadilmartias/careers/internal/metrics"
	"github.com/fadilmartias/careers/internal/middleware"
	"github.com/fadilmartias/careers/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// RegisterRoutes mounts every API route on app.
func RegisterRoutes(app *fiber.App, apps *usecase.ApplicationUsecase, auth *usecase.AuthUsecase, log logrus.FieldLogger) {
	requireAdmin := middleware.RequireAdmin(auth, log)

	NewApplicationHandler(apps, log).RegisterRoutes(app, requireAdmin)
	NewAdminHandler(auth, apps, log).RegisterRoutes(app, requireAdmin)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

// ErrorHandler answers errors that escaped the handlers with {"error": ...}.
// Only fiber errors keep their message; anything else is a 500.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if errors.As(err, &e) {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}

		log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
