package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"org-alerts/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, alert *domain.Alert) error
	List(ctx context.Context) ([]domain.Alert, error)
}

type alertRow struct {
	ID                       uuid.UUID            `db:"alert_id"`
	Title                    string               `db:"title"`
	Message                  string               `db:"message"`
	Severity                 domain.Severity      `db:"severity"`
	DeliveryChannels         pq.StringArray       `db:"delivery_channels"`
	ReminderFrequencyMinutes int                  `db:"reminder_frequency_minutes"`
	StartAt                  *time.Time           `db:"start_at"`
	ExpiresAt                *time.Time           `db:"expires_at"`
	RemindersEnabled         bool                 `db:"reminders_enabled"`
	Audience                 domain.AudienceScope `db:"audience"`
	IsArchived               bool                 `db:"is_archived"`
	CreatedAt                time.Time            `db:"created_at"`
	UpdatedAt                time.Time            `db:"updated_at"`
}

func (r alertRow) toDomain() domain.Alert {
	return domain.Alert{
		ID:                       r.ID,
		Title:                    r.Title,
		Message:                  r.Message,
		Severity:                 r.Severity,
		DeliveryChannels:         []string(r.DeliveryChannels),
		ReminderFrequencyMinutes: r.ReminderFrequencyMinutes,
		StartAt:                  r.StartAt,
		ExpiresAt:                r.ExpiresAt,
		RemindersEnabled:         r.RemindersEnabled,
		Audience:                 r.Audience,
		IsArchived:               r.IsArchived,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, title, message, severity, delivery_channels, reminder_frequency_minutes,
			start_at, expires_at, reminders_enabled, audience, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Title, alert.Message, alert.Severity, pq.StringArray(alert.DeliveryChannels),
		alert.ReminderFrequencyMinutes, alert.StartAt, alert.ExpiresAt, alert.RemindersEnabled,
		alert.Audience, alert.IsArchived, alert.CreatedAt, alert.UpdatedAt,
	)
	return err
}

func (r *alertRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	var row alertRow
	query := `SELECT * FROM alerts WHERE alert_id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	alert := row.toDomain()
	return &alert, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	query := `
		UPDATE alerts SET
			title = $2, message = $3, severity = $4, delivery_channels = $5,
			reminder_frequency_minutes = $6, start_at = $7, expires_at = $8,
			reminders_enabled = $9, audience = $10, is_archived = $11, updated_at = $12
		WHERE alert_id = $1`

	result, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Title, alert.Message, alert.Severity, pq.StringArray(alert.DeliveryChannels),
		alert.ReminderFrequencyMinutes, alert.StartAt, alert.ExpiresAt,
		alert.RemindersEnabled, alert.Audience, alert.IsArchived, alert.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func (r *alertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	var rows []alertRow
	query := `SELECT * FROM alerts ORDER BY created_at ASC, alert_id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, row.toDomain())
	}
	return alerts, nil
}
