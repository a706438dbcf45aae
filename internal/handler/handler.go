package handler

import "org-alerts/internal/service"

type Handlers struct {
	Alert     *AlertHandler
	UserAlert *UserAlertHandler
	Analytics *AnalyticsHandler
	Reminder  *ReminderHandler
	Seed      *SeedHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Alert:     NewAlertHandler(services.Alert, services.Audience),
		UserAlert: NewUserAlertHandler(services.Inbox),
		Analytics: NewAnalyticsHandler(services.Analytics),
		Reminder:  NewReminderHandler(services.Reminder),
		Seed:      NewSeedHandler(services.Seed),
	}
}
