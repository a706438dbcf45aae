package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"org-alerts/internal/middleware"
	"org-alerts/internal/service/reminder"
)

type ReminderHandler struct {
	reminderService reminder.Service
	now             func() time.Time
}

func NewReminderHandler(reminderService reminder.Service) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		now:             time.Now,
	}
}

type runReminderInput struct {
	Now *time.Time `json:"now"`
}

// Run executes a pass. The optional "now" field pins the evaluation instant.
func (h *ReminderHandler) Run(c *fiber.Ctx) error {
	now := h.now()
	if len(c.Body()) > 0 {
		var input runReminderInput
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
		if input.Now != nil {
			now = *input.Now
		}
	}

	deliveries, err := h.reminderService.Run(c.Context(), now)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deliveries": deliveries,
	})
}

func (h *ReminderHandler) Preview(c *fiber.Ctx) error {
	now := h.now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return middleware.BadRequest("now must be an RFC3339 timestamp")
		}
		now = parsed
	}

	deliveries, err := h.reminderService.Evaluate(c.Context(), now)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deliveries": deliveries,
	})
}
