package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

type inAppChannel struct {
	deliveryRepo repository.DeliveryRepository
}

// NewInAppChannel appends the delivery record to history; the inbox reads it back.
func NewInAppChannel(deliveryRepo repository.DeliveryRepository) Channel {
	return &inAppChannel{deliveryRepo: deliveryRepo}
}

func (c *inAppChannel) Name() string {
	return domain.ChannelInApp
}

func (c *inAppChannel) Deliver(ctx context.Context, alert *domain.Alert, userID uuid.UUID, at time.Time) (*domain.NotificationDelivery, error) {
	record := &domain.NotificationDelivery{
		ID:          uuid.New(),
		AlertID:     alert.ID,
		UserID:      userID,
		Channel:     domain.ChannelInApp,
		DeliveredAt: at,
	}
	if err := c.deliveryRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
