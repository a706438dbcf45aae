package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"org-alerts/internal/domain"
	"org-alerts/internal/service/inbox"
)

type UserAlertHandler struct {
	inboxService inbox.Service
	now          func() time.Time
}

func NewUserAlertHandler(inboxService inbox.Service) *UserAlertHandler {
	return &UserAlertHandler{
		inboxService: inboxService,
		now:          time.Now,
	}
}

func (h *UserAlertHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	alerts, err := h.inboxService.ListForUser(c.Context(), userID, h.now())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": alerts,
	})
}

func (h *UserAlertHandler) SetReadState(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	var input domain.SetReadStateInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	pref, err := h.inboxService.SetReadState(c.Context(), alertID, userID, input.ReadState)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

func (h *UserAlertHandler) Snooze(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	alertID, err := parseID(c, "id", "alert")
	if err != nil {
		return err
	}

	pref, err := h.inboxService.Snooze(c.Context(), alertID, userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}
