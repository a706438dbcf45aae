package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"org-alerts/internal/domain"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.NotificationDelivery) error
	// LastDeliveredAt returns the maximum delivered_at for the pair, or nil
	// when nothing was ever delivered.
	LastDeliveredAt(ctx context.Context, alertID, userID uuid.UUID) (*time.Time, error)
	ListByAlert(ctx context.Context, alertID uuid.UUID, params domain.PaginationParams) ([]domain.NotificationDelivery, int64, error)
	CountByAlert(ctx context.Context) (map[uuid.UUID]int64, error)
}

type deliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	query := `
		INSERT INTO notification_deliveries (delivery_id, alert_id, user_id, channel, delivered_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		delivery.ID, delivery.AlertID, delivery.UserID, delivery.Channel, delivery.DeliveredAt,
	)
	return err
}

func (r *deliveryRepository) LastDeliveredAt(ctx context.Context, alertID, userID uuid.UUID) (*time.Time, error) {
	var last sql.NullTime
	query := `SELECT MAX(delivered_at) FROM notification_deliveries WHERE alert_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &last, query, alertID, userID); err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

func (r *deliveryRepository) ListByAlert(ctx context.Context, alertID uuid.UUID, params domain.PaginationParams) ([]domain.NotificationDelivery, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notification_deliveries WHERE alert_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, alertID); err != nil {
		return nil, 0, err
	}

	var deliveries []domain.NotificationDelivery
	query := `
		SELECT * FROM notification_deliveries
		WHERE alert_id = $1
		ORDER BY delivered_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &deliveries, query, alertID, params.PageSize, params.Offset())
	return deliveries, total, err
}

func (r *deliveryRepository) CountByAlert(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		AlertID uuid.UUID `db:"alert_id"`
		Total   int64     `db:"total"`
	}
	query := `SELECT alert_id, COUNT(*) AS total FROM notification_deliveries GROUP BY alert_id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.AlertID] = row.Total
	}
	return counts, nil
}
