package handler

import (
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/middleware"
	"github.com/fadilmartias/careers/internal/usecase"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ApplicationHandler struct {
	uc  *usecase.ApplicationUsecase
	log logrus.FieldLogger
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase, log logrus.FieldLogger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

// RegisterRoutes mounts the public submission route and the admin-only
// review routes.
func (h *ApplicationHandler) RegisterRoutes(app fiber.Router, requireAdmin fiber.Handler) {
	app.Post("/applications", middleware.RateLimiter(10, time.Minute), h.Submit)

	app.Get("/applications", requireAdmin, h.List)
	app.Get("/applications/stats", requireAdmin, h.Stats)
	app.Get("/applications/:id", requireAdmin, h.Get)
	app.Patch("/applications/:id/status", requireAdmin, h.UpdateStatus)
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	app, err := h.uc.Submit(c.UserContext(), req)
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}

	h.log.WithField("id", app.ID.String()).Info("application submitted")
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application submitted successfully",
		Data:    app,
	})
}

// List answers with a bare JSON array, newest first.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	apps, err := h.uc.List(c.UserContext())
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}
	return c.JSON(apps)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    app,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	app, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}

	h.log.WithFields(logrus.Fields{"id": app.ID.String(), "status": app.Status}).Info("application status updated")
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Status updated",
		Data:    app,
	})
}

func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get statistics",
		Data:    stats,
	})
}
