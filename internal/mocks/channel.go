package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"org-alerts/internal/domain"
)

type Channel struct {
	mock.Mock
}

func (m *Channel) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Channel) Deliver(ctx context.Context, alert *domain.Alert, userID uuid.UUID, at time.Time) (*domain.NotificationDelivery, error) {
	args := m.Called(ctx, alert, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationDelivery), args.Error(1)
}
