package handler

import "github.com/gofiber/fiber/v2"

func SetupRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	admin := v1.Group("/admin")
	admin.Get("/seeds", h.Seed.Get)

	alerts := admin.Group("/alerts")
	alerts.Post("/", h.Alert.Create)
	alerts.Get("/", h.Alert.List)
	alerts.Put("/:id", h.Alert.Update)
	alerts.Post("/:id/archive", h.Alert.Archive)
	alerts.Get("/:id/deliveries", h.Alert.ListDeliveries)
	alerts.Get("/:id/recipients", h.Alert.ListRecipients)

	userAlerts := v1.Group("/user/alerts")
	userAlerts.Get("/", h.UserAlert.List)
	userAlerts.Post("/:id/read-state", h.UserAlert.SetReadState)
	userAlerts.Post("/:id/snooze", h.UserAlert.Snooze)

	v1.Get("/analytics/summary", h.Analytics.Summary)

	reminders := v1.Group("/reminders")
	reminders.Post("/run", h.Reminder.Run)
	reminders.Get("/preview", h.Reminder.Preview)
}
