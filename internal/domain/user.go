package domain

import (
	"github.com/google/uuid"
)

type Team struct {
	ID   uuid.UUID `json:"id" db:"team_id"`
	Name string    `json:"name" db:"name"`
}

type User struct {
	ID     uuid.UUID  `json:"id" db:"user_id"`
	Name   string     `json:"name" db:"name"`
	TeamID *uuid.UUID `json:"team_id" db:"team_id"`
}

func (u *User) InTeam(teamID uuid.UUID) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}
