package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"org-alerts/internal/config"
	"org-alerts/internal/pkg/seed"
	"org-alerts/internal/repository"
	"org-alerts/internal/service/alert"
	"org-alerts/internal/service/analytics"
	"org-alerts/internal/service/audience"
	"org-alerts/internal/service/delivery"
	"org-alerts/internal/service/inbox"
	"org-alerts/internal/service/preference"
	"org-alerts/internal/service/reminder"
)

type Services struct {
	Alert      alert.Service
	Audience   audience.Service
	Preference preference.Service
	Delivery   delivery.Service
	Reminder   reminder.Service
	Inbox      inbox.Service
	Analytics  analytics.Service
	Seed       seed.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config, log *logrus.Logger) *Services {
	preferenceService := preference.NewService(repos.Preference, cfg.Location())
	deliveryService := delivery.NewService(delivery.NewInAppChannel(repos.Delivery))
	alertService := alert.NewService(repos.Alert, repos.Delivery)

	reminderService := reminder.NewService(
		repos.Alert,
		repos.User,
		repos.Delivery,
		preferenceService,
		deliveryService,
		redis,
		log,
		reminder.Options{
			DedupeWithinPass: cfg.ReminderDedupeWithinPass,
			LeaseTTL:         cfg.ReminderLockTTL,
		},
	)

	return &Services{
		Alert:      alertService,
		Audience:   audience.NewService(repos.User),
		Preference: preferenceService,
		Delivery:   deliveryService,
		Reminder:   reminderService,
		Inbox:      inbox.NewService(repos.Alert, repos.User, repos.Delivery, preferenceService),
		Analytics:  analytics.NewService(repos.Alert, repos.Delivery, repos.Preference, redis, cfg.AnalyticsCacheTTL),
		Seed:       seed.NewService(repos.Team, repos.User, alertService),
	}
}
