package audience_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository/memory"
	"org-alerts/internal/service/audience"
)

func ids(users []domain.User) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func TestResolve(t *testing.T) {
	engineering := uuid.New()
	marketing := uuid.New()

	alice := domain.User{ID: uuid.New(), Name: "Alice", TeamID: &engineering}
	bob := domain.User{ID: uuid.New(), Name: "Bob", TeamID: &engineering}
	cara := domain.User{ID: uuid.New(), Name: "Cara", TeamID: &marketing}
	dave := domain.User{ID: uuid.New(), Name: "Dave"}
	users := []domain.User{alice, bob, cara, dave}

	t.Run("Organization returns everyone", func(t *testing.T) {
		got := audience.Resolve(domain.OrganizationAudience(), users)
		assert.Equal(t, ids(users), ids(got))
	})

	t.Run("Teams returns only members", func(t *testing.T) {
		got := audience.Resolve(domain.TeamsAudience(engineering), users)
		assert.Equal(t, []uuid.UUID{alice.ID, bob.ID}, ids(got))
	})

	t.Run("Teamless users never match a teams scope", func(t *testing.T) {
		got := audience.Resolve(domain.TeamsAudience(engineering, marketing), users)
		assert.NotContains(t, ids(got), dave.ID)
		assert.Len(t, got, 3)
	})

	t.Run("Users scope ignores team", func(t *testing.T) {
		got := audience.Resolve(domain.UsersAudience(dave.ID, cara.ID), users)
		assert.Equal(t, []uuid.UUID{cara.ID, dave.ID}, ids(got))
	})

	t.Run("Unknown ids resolve to nothing", func(t *testing.T) {
		assert.Empty(t, audience.Resolve(domain.UsersAudience(uuid.New()), users))
		assert.Empty(t, audience.Resolve(domain.TeamsAudience(uuid.New()), users))
	})

	t.Run("Empty user snapshot", func(t *testing.T) {
		assert.Empty(t, audience.Resolve(domain.OrganizationAudience(), nil))
	})
}

func TestService_Recipients(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	team := uuid.New()
	member := domain.User{ID: uuid.New(), Name: "Member", TeamID: &team}
	outsider := domain.User{ID: uuid.New(), Name: "Outsider"}
	require.NoError(t, repo.Create(ctx, &member))
	require.NoError(t, repo.Create(ctx, &outsider))

	svc := audience.NewService(repo)

	got, err := svc.Recipients(ctx, domain.TeamsAudience(team))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{member.ID}, ids(got))
}
