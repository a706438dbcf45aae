package handler

import (
	"github.com/gofiber/fiber/v2"

	"org-alerts/internal/domain"
	"org-alerts/internal/middleware"
	"org-alerts/internal/service/alert"
	"org-alerts/internal/service/audience"
)

type AlertHandler struct {
	alertService    alert.Service
	audienceService audience.Service
}

func NewAlertHandler(alertService alert.Service, audienceService audience.Service) *AlertHandler {
	return &AlertHandler{
		alertService:    alertService,
		audienceService: audienceService,
	}
}

func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAlertInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if err := input.Audience.Validate(); err != nil {
		return middleware.ValidationFailed(err.Error())
	}

	created, err := h.alertService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AlertHandler) Update(c *fiber.Ctx) error {
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	var input domain.UpdateAlertInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if input.Audience != nil {
		if err := input.Audience.Validate(); err != nil {
			return middleware.ValidationFailed(err.Error())
		}
	}

	updated, err := h.alertService.Update(c.Context(), alertID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AlertHandler) Archive(c *fiber.Ctx) error {
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	archived, err := h.alertService.Archive(c.Context(), alertID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(archived)
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	var filter domain.AlertFilter
	if err := c.QueryParser(&filter); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}
	if err := validate.Struct(filter); err != nil {
		return err
	}

	alerts, err := h.alertService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": alerts,
	})
}

func (h *AlertHandler) ListDeliveries(c *fiber.Ctx) error {
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	result, err := h.alertService.ListDeliveries(c.Context(), alertID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AlertHandler) ListRecipients(c *fiber.Ctx) error {
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	a, err := h.alertService.GetByID(c.Context(), alertID)
	if err != nil {
		return err
	}

	users, err := h.audienceService.Recipients(c.Context(), a.Audience)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": users,
	})
}
