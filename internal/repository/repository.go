package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Alert      AlertRepository
	Team       TeamRepository
	User       UserRepository
	Delivery   DeliveryRepository
	Preference PreferenceRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Alert:      NewAlertRepository(db),
		Team:       NewTeamRepository(db),
		User:       NewUserRepository(db),
		Delivery:   NewDeliveryRepository(db),
		Preference: NewPreferenceRepository(db),
	}
}
