package handler

import (
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/middleware"
	"github.com/fadilmartias/careers/internal/review"
	"github.com/fadilmartias/careers/internal/usecase"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	auth *usecase.AuthUsecase
	apps *usecase.ApplicationUsecase
	log  logrus.FieldLogger
}

func NewAdminHandler(auth *usecase.AuthUsecase, apps *usecase.ApplicationUsecase, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{auth: auth, apps: apps, log: log}
}

func (h *AdminHandler) RegisterRoutes(app fiber.Router, requireAdmin fiber.Handler) {
	app.Post("/admin/auth", middleware.RateLimiter(10, time.Minute), h.Login)
	app.Post("/admin/logout", requireAdmin, h.Logout)
	app.Get("/admin/applications", requireAdmin, h.Search)
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session, err := h.auth.Login(c.UserContext(), req.Password)
	if err != nil {
		if util.IsKind(err, util.KindAuthentication) {
			h.log.WithField("ip", c.IP()).Warn("admin login rejected")
		}
		return util.AppErrorResponse(c, h.log, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged in",
		Data:    session,
	})
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.TokenLocal).(string)
	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged out",
	})
}

// Search returns one filtered page, using the same matching rules as the
// dashboard.
func (h *AdminHandler) Search(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", review.DefaultPageSize)
	if pageSize > 100 {
		pageSize = 100
	}

	apps, pagination, err := h.apps.Search(c.UserContext(), c.Query("search"), page, pageSize)
	if err != nil {
		return util.AppErrorResponse(c, h.log, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get applications",
		Data:       apps,
		Pagination: pagination,
	})
}
