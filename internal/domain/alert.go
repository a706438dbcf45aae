package domain

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

const ChannelInApp = "in_app"

const DefaultReminderFrequencyMinutes = 120

type Alert struct {
	ID                       uuid.UUID     `json:"id" db:"alert_id"`
	Title                    string        `json:"title" db:"title"`
	Message                  string        `json:"message" db:"message"`
	Severity                 Severity      `json:"severity" db:"severity"`
	DeliveryChannels         []string      `json:"delivery_channels" db:"delivery_channels"`
	ReminderFrequencyMinutes int           `json:"reminder_frequency_minutes" db:"reminder_frequency_minutes"`
	StartAt                  *time.Time    `json:"start_at" db:"start_at"`
	ExpiresAt                *time.Time    `json:"expires_at" db:"expires_at"`
	RemindersEnabled         bool          `json:"reminders_enabled" db:"reminders_enabled"`
	Audience                 AudienceScope `json:"audience" db:"audience"`
	IsArchived               bool          `json:"is_archived" db:"is_archived"`
	CreatedAt                time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at" db:"updated_at"`
}

// IsActiveAt reports whether the alert is visible at t: not archived and
// inside the half-open window [StartAt, ExpiresAt).
func (a *Alert) IsActiveAt(t time.Time) bool {
	if a.IsArchived {
		return false
	}
	if a.StartAt != nil && a.StartAt.After(t) {
		return false
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(t) {
		return false
	}
	return true
}

// IsExpiredAt reports whether the alert has an expiry strictly before t.
func (a *Alert) IsExpiredAt(t time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(t)
}

type CreateAlertInput struct {
	Title                    string        `json:"title" validate:"required,min=1"`
	Message                  string        `json:"message" validate:"required,min=1"`
	Severity                 Severity      `json:"severity" validate:"required,oneof=info warning critical"`
	Audience                 AudienceScope `json:"audience"`
	ReminderFrequencyMinutes *int          `json:"reminder_frequency_minutes,omitempty" validate:"omitempty,gt=0"`
	StartAt                  *time.Time    `json:"start_at,omitempty"`
	ExpiresAt                *time.Time    `json:"expires_at,omitempty"`
	RemindersEnabled         *bool         `json:"reminders_enabled,omitempty"`
}

// UpdateAlertInput carries a partial update. Nil fields are left untouched.
type UpdateAlertInput struct {
	Title                    *string        `json:"title,omitempty" validate:"omitempty,min=1"`
	Message                  *string        `json:"message,omitempty" validate:"omitempty,min=1"`
	Severity                 *Severity      `json:"severity,omitempty" validate:"omitempty,oneof=info warning critical"`
	Audience                 *AudienceScope `json:"audience,omitempty"`
	ReminderFrequencyMinutes *int           `json:"reminder_frequency_minutes,omitempty" validate:"omitempty,gt=0"`
	StartAt                  *time.Time     `json:"start_at,omitempty"`
	ExpiresAt                *time.Time     `json:"expires_at,omitempty"`
	RemindersEnabled         *bool          `json:"reminders_enabled,omitempty"`
	IsArchived               *bool          `json:"is_archived,omitempty"`
}

type AlertStatus string

const (
	AlertStatusActive  AlertStatus = "active"
	AlertStatusExpired AlertStatus = "expired"
)

// AlertFilter fields are ANDed; zero values impose no constraint.
type AlertFilter struct {
	Severity     Severity     `query:"severity" validate:"omitempty,oneof=info warning critical"`
	Status       AlertStatus  `query:"status" validate:"omitempty,oneof=active expired"`
	AudienceType AudienceType `query:"audience_type" validate:"omitempty,oneof=organization teams users"`
}

// Clone returns a deep copy so stored alerts are never aliased by callers.
func (a Alert) Clone() Alert {
	out := a
	out.DeliveryChannels = append([]string(nil), a.DeliveryChannels...)
	out.Audience = a.Audience.Clone()
	if a.StartAt != nil {
		t := *a.StartAt
		out.StartAt = &t
	}
	if a.ExpiresAt != nil {
		t := *a.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}
