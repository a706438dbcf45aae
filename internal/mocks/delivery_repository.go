package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"org-alerts/internal/domain"
)

type DeliveryRepository struct {
	mock.Mock
}

func (m *DeliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *DeliveryRepository) LastDeliveredAt(ctx context.Context, alertID, userID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, alertID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *DeliveryRepository) ListByAlert(ctx context.Context, alertID uuid.UUID, params domain.PaginationParams) ([]domain.NotificationDelivery, int64, error) {
	args := m.Called(ctx, alertID, params)
	return args.Get(0).([]domain.NotificationDelivery), args.Get(1).(int64), args.Error(2)
}

func (m *DeliveryRepository) CountByAlert(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}
