package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository/memory"
)

func TestAlertRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAlertRepository()

	a := domain.Alert{
		ID:               uuid.New(),
		Title:            "original",
		DeliveryChannels: []string{domain.ChannelInApp},
		Audience:         domain.UsersAudience(uuid.New()),
	}
	require.NoError(t, repo.Create(ctx, &a))

	t.Run("Reads are copies", func(t *testing.T) {
		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)

		got.Title = "changed"
		got.DeliveryChannels[0] = "sms"
		got.Audience.UserIDs[0] = uuid.Nil

		again, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", again.Title)
		assert.Equal(t, domain.ChannelInApp, again.DeliveryChannels[0])
		assert.NotEqual(t, uuid.Nil, again.Audience.UserIDs[0])
	})

	t.Run("Missing alert", func(t *testing.T) {
		got, err := repo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)

		err = repo.Update(ctx, &domain.Alert{ID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrAlertNotFound)
	})

	t.Run("List keeps insertion order", func(t *testing.T) {
		second := domain.Alert{ID: uuid.New(), Title: "second"}
		require.NoError(t, repo.Create(ctx, &second))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, a.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})
}

func TestDeliveryRepository_LastDeliveredAt(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewDeliveryRepository()
	alertID, userID := uuid.New(), uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	none, err := repo.LastDeliveredAt(ctx, alertID, userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	// Appended out of order.
	for _, offset := range []time.Duration{time.Hour, 3 * time.Hour, 2 * time.Hour} {
		require.NoError(t, repo.Create(ctx, &domain.NotificationDelivery{
			ID: uuid.New(), AlertID: alertID, UserID: userID, DeliveredAt: base.Add(offset),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.NotificationDelivery{
		ID: uuid.New(), AlertID: alertID, UserID: uuid.New(), DeliveredAt: base.Add(10 * time.Hour),
	}))

	last, err := repo.LastDeliveredAt(ctx, alertID, userID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, base.Add(3*time.Hour).Equal(*last))

	counts, err := repo.CountByAlert(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[alertID])
}

func TestPreferenceRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPreferenceRepository()
	alertID, userID := uuid.New(), uuid.New()

	got, err := repo.Get(ctx, alertID, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	first, err := repo.FindOrCreate(ctx, alertID, userID, func(p *domain.UserAlertPreference) {})
	require.NoError(t, err)
	assert.Equal(t, domain.ReadStateUnread, first.ReadState)
	assert.Nil(t, first.LastSnoozedAt)

	second, err := repo.FindOrCreate(ctx, alertID, userID, func(p *domain.UserAlertPreference) {
		p.ReadState = domain.ReadStateRead
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Mutating a returned record leaves the store untouched.
	second.ReadState = domain.ReadStateUnread
	stored, err := repo.Get(ctx, alertID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadStateRead, stored.ReadState)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTeamAndUserRepositories(t *testing.T) {
	ctx := context.Background()
	teams := memory.NewTeamRepository()
	users := memory.NewUserRepository()

	count, err := teams.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	team := domain.Team{ID: uuid.New(), Name: "Ops"}
	require.NoError(t, teams.Create(ctx, &team))
	count, err = teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	u := domain.User{ID: uuid.New(), Name: "Dave", TeamID: &team.ID}
	require.NoError(t, users.Create(ctx, &u))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	*got.TeamID = uuid.Nil

	again, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, *again.TeamID)

	missing, err := users.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
