package delivery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/mocks"
	"org-alerts/internal/repository/memory"
	"org-alerts/internal/service/delivery"
)

func TestService_DeliverToUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("In-app channel appends history", func(t *testing.T) {
		repo := memory.NewDeliveryRepository()
		svc := delivery.NewService(delivery.NewInAppChannel(repo))

		alert := &domain.Alert{ID: uuid.New(), DeliveryChannels: []string{domain.ChannelInApp}}

		records, err := svc.DeliverToUser(ctx, alert, userID, now)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, alert.ID, records[0].AlertID)
		assert.Equal(t, userID, records[0].UserID)
		assert.Equal(t, domain.ChannelInApp, records[0].Channel)
		assert.True(t, now.Equal(records[0].DeliveredAt))

		last, err := repo.LastDeliveredAt(ctx, alert.ID, userID)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, now.Equal(*last))
	})

	t.Run("Unregistered channel does not block the others", func(t *testing.T) {
		repo := memory.NewDeliveryRepository()
		svc := delivery.NewService(delivery.NewInAppChannel(repo))

		alert := &domain.Alert{ID: uuid.New(), DeliveryChannels: []string{"sms", domain.ChannelInApp}}

		records, err := svc.DeliverToUser(ctx, alert, userID, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnregisteredChannel)
		assert.Contains(t, err.Error(), "sms")
		require.Len(t, records, 1)
		assert.Equal(t, domain.ChannelInApp, records[0].Channel)
	})

	t.Run("Channel failure is reported per channel", func(t *testing.T) {
		failing := new(mocks.Channel)
		failing.On("Name").Return("email")
		failing.On("Deliver", ctx, mock.Anything, userID, now).Return(nil, errors.New("smtp down")).Once()

		repo := memory.NewDeliveryRepository()
		svc := delivery.NewService(failing, delivery.NewInAppChannel(repo))

		alert := &domain.Alert{ID: uuid.New(), DeliveryChannels: []string{"email", domain.ChannelInApp}}

		records, err := svc.DeliverToUser(ctx, alert, userID, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp down")
		assert.NotErrorIs(t, err, domain.ErrUnregisteredChannel)
		assert.Len(t, records, 1)
		failing.AssertExpectations(t)
	})

	t.Run("Registered later channel is used", func(t *testing.T) {
		custom := new(mocks.Channel)
		custom.On("Name").Return("webhook")
		custom.On("Deliver", ctx, mock.Anything, userID, now).Return(&domain.NotificationDelivery{
			ID:          uuid.New(),
			UserID:      userID,
			Channel:     "webhook",
			DeliveredAt: now,
		}, nil).Once()

		svc := delivery.NewService()
		svc.Register(custom)

		alert := &domain.Alert{ID: uuid.New(), DeliveryChannels: []string{"webhook"}}

		records, err := svc.DeliverToUser(ctx, alert, userID, now)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "webhook", records[0].Channel)
		custom.AssertExpectations(t)
	})
}
