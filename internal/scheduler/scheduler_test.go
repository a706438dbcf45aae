package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/mocks"
	"org-alerts/internal/pkg/logging"
)

func TestNew_InvalidSpec(t *testing.T) {
	s, err := New("not a schedule", new(mocks.ReminderService), time.UTC, logging.Discard())
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestScheduler_Tick(t *testing.T) {
	now := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Runs a pass at the current time", func(t *testing.T) {
		engine := new(mocks.ReminderService)
		engine.On("Run", mock.Anything, now).Return([]domain.ReminderDelivery{}, nil).Once()

		s, err := New("@every 5m", engine, time.UTC, logging.Discard())
		require.NoError(t, err)
		s.now = func() time.Time { return now }

		s.tick()

		engine.AssertExpectations(t)
	})

	t.Run("Lease contention is tolerated", func(t *testing.T) {
		engine := new(mocks.ReminderService)
		engine.On("Run", mock.Anything, now).Return(nil, domain.ErrPassInProgress).Once()

		s, err := New("@every 5m", engine, time.UTC, logging.Discard())
		require.NoError(t, err)
		s.now = func() time.Time { return now }

		assert.NotPanics(t, s.tick)
		engine.AssertExpectations(t)
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New("@every 1h", new(mocks.ReminderService), nil, logging.Discard())
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
