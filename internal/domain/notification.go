package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationDelivery is an append-only record of one alert sent to one user
// over one channel.
type NotificationDelivery struct {
	ID          uuid.UUID `json:"id" db:"delivery_id"`
	AlertID     uuid.UUID `json:"alert_id" db:"alert_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Channel     string    `json:"channel" db:"channel"`
	DeliveredAt time.Time `json:"delivered_at" db:"delivered_at"`
}

// ReminderDelivery identifies an (alert, user) pair issued by a reminder pass.
type ReminderDelivery struct {
	AlertID uuid.UUID `json:"alert_id"`
	UserID  uuid.UUID `json:"user_id"`
}

type ReadState string

const (
	ReadStateUnread ReadState = "unread"
	ReadStateRead   ReadState = "read"
)

type UserAlertPreference struct {
	ID            uuid.UUID  `json:"id" db:"preference_id"`
	AlertID       uuid.UUID  `json:"alert_id" db:"alert_id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	ReadState     ReadState  `json:"read_state" db:"read_state"`
	LastSnoozedAt *time.Time `json:"last_snoozed_at" db:"last_snoozed_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// NewUserAlertPreference returns the default record created on first interaction.
func NewUserAlertPreference(alertID, userID uuid.UUID, now time.Time) *UserAlertPreference {
	return &UserAlertPreference{
		ID:        uuid.New(),
		AlertID:   alertID,
		UserID:    userID,
		ReadState: ReadStateUnread,
		UpdatedAt: now,
	}
}

type SetReadStateInput struct {
	ReadState ReadState `json:"read_state" validate:"required,oneof=read unread"`
}

// UserAlertState is the per-user view of an alert in the inbox.
type UserAlertState struct {
	ReadState       ReadState  `json:"read_state"`
	SnoozedToday    bool       `json:"snoozed_today"`
	LastDeliveredAt *time.Time `json:"last_delivered_at,omitempty"`
}

type UserAlert struct {
	Alert
	UserState UserAlertState `json:"user_state"`
}
