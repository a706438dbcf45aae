package inbox_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
	"org-alerts/internal/repository/memory"
	"org-alerts/internal/service/inbox"
	"org-alerts/internal/service/preference"
)

func seedAlert(t *testing.T, repos *repository.Repositories, title string, scope domain.AudienceScope, created time.Time, mutate ...func(*domain.Alert)) domain.Alert {
	t.Helper()
	a := domain.Alert{
		ID:                       uuid.New(),
		Title:                    title,
		Severity:                 domain.SeverityInfo,
		DeliveryChannels:         []string{domain.ChannelInApp},
		ReminderFrequencyMinutes: 120,
		RemindersEnabled:         true,
		Audience:                 scope,
		CreatedAt:                created,
		UpdatedAt:                created,
	}
	for _, fn := range mutate {
		fn(&a)
	}
	require.NoError(t, repos.Alert.Create(context.Background(), &a))
	return a
}

func TestInboxService_ListForUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC)

	repos := memory.NewRepositories()
	prefs := preference.NewService(repos.Preference, time.UTC)
	prefs.SetClock(func() time.Time { return now })
	svc := inbox.NewService(repos.Alert, repos.User, repos.Delivery, prefs)

	engineering := uuid.New()
	alice := domain.User{ID: uuid.New(), Name: "Alice", TeamID: &engineering}
	dave := domain.User{ID: uuid.New(), Name: "Dave"}
	require.NoError(t, repos.User.Create(ctx, &alice))
	require.NoError(t, repos.User.Create(ctx, &dave))

	org := seedAlert(t, repos, "Security Training", domain.OrganizationAudience(), now.Add(-3*time.Hour))
	team := seedAlert(t, repos, "Deploy Freeze", domain.TeamsAudience(engineering), now.Add(-2*time.Hour))
	seedAlert(t, repos, "Archived", domain.OrganizationAudience(), now.Add(-time.Hour), func(a *domain.Alert) { a.IsArchived = true })

	delivered := now.Add(-30 * time.Minute)
	require.NoError(t, repos.Delivery.Create(ctx, &domain.NotificationDelivery{
		ID: uuid.New(), AlertID: org.ID, UserID: alice.ID, Channel: domain.ChannelInApp, DeliveredAt: delivered,
	}))
	_, err := prefs.SetReadState(ctx, org.ID, alice.ID, domain.ReadStateRead)
	require.NoError(t, err)
	_, err = prefs.SnoozeForToday(ctx, team.ID, alice.ID)
	require.NoError(t, err)

	t.Run("Team member sees org and team alerts, newest first", func(t *testing.T) {
		got, err := svc.ListForUser(ctx, alice.ID, now)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, team.ID, got[0].ID)
		assert.Equal(t, domain.ReadStateUnread, got[0].UserState.ReadState)
		assert.True(t, got[0].UserState.SnoozedToday)
		assert.Nil(t, got[0].UserState.LastDeliveredAt)

		assert.Equal(t, org.ID, got[1].ID)
		assert.Equal(t, domain.ReadStateRead, got[1].UserState.ReadState)
		assert.False(t, got[1].UserState.SnoozedToday)
		require.NotNil(t, got[1].UserState.LastDeliveredAt)
		assert.True(t, delivered.Equal(*got[1].UserState.LastDeliveredAt))
	})

	t.Run("Snooze expires with the day", func(t *testing.T) {
		got, err := svc.ListForUser(ctx, alice.ID, now.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.False(t, got[0].UserState.SnoozedToday)
	})

	t.Run("Teamless user sees only org alerts", func(t *testing.T) {
		got, err := svc.ListForUser(ctx, dave.ID, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, org.ID, got[0].ID)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := svc.ListForUser(ctx, uuid.New(), now)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestInboxService_Mutations(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := inbox.NewService(repos.Alert, repos.User, repos.Delivery, preference.NewService(repos.Preference, time.UTC))

	user := domain.User{ID: uuid.New(), Name: "Bob"}
	require.NoError(t, repos.User.Create(ctx, &user))
	a := seedAlert(t, repos, "Alert", domain.OrganizationAudience(), time.Now())

	t.Run("Read state", func(t *testing.T) {
		pref, err := svc.SetReadState(ctx, a.ID, user.ID, domain.ReadStateRead)
		require.NoError(t, err)
		assert.Equal(t, domain.ReadStateRead, pref.ReadState)
	})

	t.Run("Snooze", func(t *testing.T) {
		pref, err := svc.Snooze(ctx, a.ID, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, pref.LastSnoozedAt)
		assert.Equal(t, domain.ReadStateRead, pref.ReadState)
	})

	t.Run("Unknown alert", func(t *testing.T) {
		_, err := svc.Snooze(ctx, uuid.New(), user.ID)
		assert.ErrorIs(t, err, domain.ErrAlertNotFound)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := svc.SetReadState(ctx, a.ID, uuid.New(), domain.ReadStateRead)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
