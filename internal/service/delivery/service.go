package delivery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
)

// Channel delivers one alert to one user and records the delivery.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, alert *domain.Alert, userID uuid.UUID, at time.Time) (*domain.NotificationDelivery, error)
}

type Service interface {
	Register(ch Channel)
	// DeliverToUser sends alert to userID on every channel of the alert and
	// stamps the records with at. Channel failures are independent: the
	// returned slice holds what succeeded and the error joins the failures.
	DeliverToUser(ctx context.Context, alert *domain.Alert, userID uuid.UUID, at time.Time) ([]domain.NotificationDelivery, error)
}

type service struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

func NewService(channels ...Channel) Service {
	s := &service{
		channels: make(map[string]Channel),
	}
	for _, ch := range channels {
		s.Register(ch)
	}
	return s
}

func (s *service) Register(ch Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[ch.Name()] = ch
}

func (s *service) DeliverToUser(ctx context.Context, alert *domain.Alert, userID uuid.UUID, at time.Time) ([]domain.NotificationDelivery, error) {
	deliveries := make([]domain.NotificationDelivery, 0, len(alert.DeliveryChannels))
	var errs []error

	for _, name := range alert.DeliveryChannels {
		s.mu.RLock()
		ch, ok := s.channels[name]
		s.mu.RUnlock()

		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrUnregisteredChannel, name))
			continue
		}

		record, err := ch.Deliver(ctx, alert, userID, at)
		if err != nil {
			errs = append(errs, fmt.Errorf("channel %s: %w", name, err))
			continue
		}
		deliveries = append(deliveries, *record)
	}

	return deliveries, errors.Join(errs...)
}
