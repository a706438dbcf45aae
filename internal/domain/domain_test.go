package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"org-alerts/internal/domain"
)

func TestAlert_IsActiveAt(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	before := now.Add(-time.Minute)
	after := now.Add(time.Minute)

	tests := []struct {
		name  string
		alert domain.Alert
		want  bool
	}{
		{"Open window", domain.Alert{}, true},
		{"Starts exactly now", domain.Alert{StartAt: &now}, true},
		{"Starts later", domain.Alert{StartAt: &after}, false},
		{"Expires exactly now", domain.Alert{ExpiresAt: &now}, false},
		{"Expires later", domain.Alert{StartAt: &before, ExpiresAt: &after}, true},
		{"Archived", domain.Alert{IsArchived: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alert.IsActiveAt(now))
		})
	}
}

func TestAudienceScope_Validate(t *testing.T) {
	assert.NoError(t, domain.OrganizationAudience().Validate())
	assert.NoError(t, domain.TeamsAudience(uuid.New()).Validate())
	assert.NoError(t, domain.UsersAudience(uuid.New()).Validate())

	assert.Error(t, domain.TeamsAudience().Validate())
	assert.Error(t, domain.UsersAudience().Validate())
	assert.Error(t, domain.AudienceScope{Type: "everyone"}.Validate())
}

func TestAudienceScope_ValueScan(t *testing.T) {
	scope := domain.UsersAudience(uuid.New(), uuid.New())

	v, err := scope.Value()
	require.NoError(t, err)

	var got domain.AudienceScope
	require.NoError(t, got.Scan(v))
	assert.Equal(t, scope, got)

	var fromString domain.AudienceScope
	require.NoError(t, fromString.Scan(`{"type":"organization"}`))
	assert.Equal(t, domain.AudienceOrganization, fromString.Type)

	assert.Error(t, fromString.Scan(nil))
	assert.Error(t, fromString.Scan(42))
}

func TestAudienceScope_Clone(t *testing.T) {
	scope := domain.TeamsAudience(uuid.New())
	clone := scope.Clone()
	clone.TeamIDs[0] = uuid.Nil

	assert.NotEqual(t, uuid.Nil, scope.TeamIDs[0])
}
