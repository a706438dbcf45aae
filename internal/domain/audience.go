package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type AudienceType string

const (
	AudienceOrganization AudienceType = "organization"
	AudienceTeams        AudienceType = "teams"
	AudienceUsers        AudienceType = "users"
)

// AudienceScope is a tagged union: only the id set matching Type is meaningful.
type AudienceScope struct {
	Type    AudienceType `json:"type" validate:"required,oneof=organization teams users"`
	TeamIDs []uuid.UUID  `json:"team_ids,omitempty"`
	UserIDs []uuid.UUID  `json:"user_ids,omitempty"`
}

// Validate checks that scoped audiences carry a non-empty id set.
func (a AudienceScope) Validate() error {
	switch a.Type {
	case AudienceOrganization:
		return nil
	case AudienceTeams:
		if len(a.TeamIDs) == 0 {
			return errors.New("team_ids must not be empty for teams audience")
		}
		return nil
	case AudienceUsers:
		if len(a.UserIDs) == 0 {
			return errors.New("user_ids must not be empty for users audience")
		}
		return nil
	default:
		return fmt.Errorf("unknown audience type %q", a.Type)
	}
}

func OrganizationAudience() AudienceScope {
	return AudienceScope{Type: AudienceOrganization}
}

func TeamsAudience(teamIDs ...uuid.UUID) AudienceScope {
	return AudienceScope{Type: AudienceTeams, TeamIDs: teamIDs}
}

func UsersAudience(userIDs ...uuid.UUID) AudienceScope {
	return AudienceScope{Type: AudienceUsers, UserIDs: userIDs}
}

// Value stores the scope as a JSONB document.
func (a AudienceScope) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AudienceScope) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		return errors.New("audience scope is null")
	default:
		return fmt.Errorf("unsupported audience scope type %T", src)
	}
	return json.Unmarshal(data, a)
}

func (a AudienceScope) Clone() AudienceScope {
	out := AudienceScope{Type: a.Type}
	if a.TeamIDs != nil {
		out.TeamIDs = append([]uuid.UUID(nil), a.TeamIDs...)
	}
	if a.UserIDs != nil {
		out.UserIDs = append([]uuid.UUID(nil), a.UserIDs...)
	}
	return out
}
