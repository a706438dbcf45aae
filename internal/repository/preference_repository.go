package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"org-alerts/internal/domain"
)

type PreferenceRepository interface {
	Get(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error)
	// FindOrCreate loads the pair's record, creating the default one if it is
	// missing, applies mutate and persists the result as one atomic step.
	FindOrCreate(ctx context.Context, alertID, userID uuid.UUID, mutate func(*domain.UserAlertPreference)) (*domain.UserAlertPreference, error)
	List(ctx context.Context) ([]domain.UserAlertPreference, error)
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error) {
	var pref domain.UserAlertPreference
	query := `SELECT * FROM user_alert_preferences WHERE alert_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &pref, query, alertID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) FindOrCreate(ctx context.Context, alertID, userID uuid.UUID, mutate func(*domain.UserAlertPreference)) (*domain.UserAlertPreference, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The unique (alert_id, user_id) constraint turns concurrent creators into no-ops.
	def := domain.NewUserAlertPreference(alertID, userID, time.Now())
	insert := `
		INSERT INTO user_alert_preferences (preference_id, alert_id, user_id, read_state, last_snoozed_at, updated_at)
		VALUES ($1, $2, $3, $4, NULL, $5)
		ON CONFLICT (alert_id, user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, insert, def.ID, def.AlertID, def.UserID, def.ReadState, def.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}

	var pref domain.UserAlertPreference
	sel := `SELECT * FROM user_alert_preferences WHERE alert_id = $1 AND user_id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &pref, sel, alertID, userID); err != nil {
		return nil, fmt.Errorf("failed to lock preference: %w", err)
	}

	mutate(&pref)

	update := `
		UPDATE user_alert_preferences
		SET read_state = $1, last_snoozed_at = $2, updated_at = $3
		WHERE preference_id = $4`
	if _, err := tx.ExecContext(ctx, update, pref.ReadState, pref.LastSnoozedAt, pref.UpdatedAt, pref.ID); err != nil {
		return nil, fmt.Errorf("failed to update preference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit preference: %w", err)
	}
	return &pref, nil
}

func (r *preferenceRepository) List(ctx context.Context) ([]domain.UserAlertPreference, error) {
	var prefs []domain.UserAlertPreference
	query := `SELECT * FROM user_alert_preferences ORDER BY updated_at ASC`
	err := r.db.SelectContext(ctx, &prefs, query)
	return prefs, err
}
