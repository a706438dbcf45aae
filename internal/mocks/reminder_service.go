package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"org-alerts/internal/domain"
)

type ReminderService struct {
	mock.Mock
}

func (m *ReminderService) Evaluate(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderDelivery), args.Error(1)
}

func (m *ReminderService) Run(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderDelivery), args.Error(1)
}
