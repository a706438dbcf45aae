package alert

import (
	"context"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateAlertInput) (*domain.Alert, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateAlertInput) (*domain.Alert, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error)
	ListDeliveries(ctx context.Context, id uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NotificationDelivery], error)
	SetClock(now func() time.Time)
}

type service struct {
	alertRepo    repository.AlertRepository
	deliveryRepo repository.DeliveryRepository
	now          func() time.Time
}

func NewService(alertRepo repository.AlertRepository, deliveryRepo repository.DeliveryRepository) Service {
	return &service{
		alertRepo:    alertRepo,
		deliveryRepo: deliveryRepo,
		now:          time.Now,
	}
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *service) Create(ctx context.Context, input domain.CreateAlertInput) (*domain.Alert, error) {
	now := s.now()

	alert := &domain.Alert{
		ID:                       uuid.New(),
		Title:                    input.Title,
		Message:                  input.Message,
		Severity:                 input.Severity,
		DeliveryChannels:         []string{domain.ChannelInApp},
		ReminderFrequencyMinutes: domain.DefaultReminderFrequencyMinutes,
		StartAt:                  &now,
		ExpiresAt:                input.ExpiresAt,
		RemindersEnabled:         true,
		Audience:                 input.Audience.Clone(),
		IsArchived:               false,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if input.ReminderFrequencyMinutes != nil {
		alert.ReminderFrequencyMinutes = *input.ReminderFrequencyMinutes
	}
	if input.StartAt != nil {
		alert.StartAt = input.StartAt
	}
	if input.RemindersEnabled != nil {
		alert.RemindersEnabled = *input.RemindersEnabled
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrAlertNotFound
	}
	return alert, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateAlertInput) (*domain.Alert, error) {
	alert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		alert.Title = *input.Title
	}
	if input.Message != nil {
		alert.Message = *input.Message
	}
	if input.Severity != nil {
		alert.Severity = *input.Severity
	}
	if input.Audience != nil {
		alert.Audience = input.Audience.Clone()
	}
	if input.ReminderFrequencyMinutes != nil {
		alert.ReminderFrequencyMinutes = *input.ReminderFrequencyMinutes
	}
	if input.StartAt != nil {
		alert.StartAt = input.StartAt
	}
	if input.ExpiresAt != nil {
		alert.ExpiresAt = input.ExpiresAt
	}
	if input.RemindersEnabled != nil {
		alert.RemindersEnabled = *input.RemindersEnabled
	}
	// Archiving is one-way; is_archived=false is ignored.
	if input.IsArchived != nil && *input.IsArchived {
		alert.IsArchived = true
	}
	alert.UpdatedAt = s.now()

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (s *service) Archive(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alert.IsArchived = true
	alert.UpdatedAt = s.now()

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

func (s *service) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	alerts, err := s.alertRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]domain.Alert, 0, len(alerts))
	for i := range alerts {
		if matches(&alerts[i], filter, now) {
			result = append(result, alerts[i])
		}
	}
	return result, nil
}

func matches(a *domain.Alert, filter domain.AlertFilter, now time.Time) bool {
	if filter.Severity != "" && a.Severity != filter.Severity {
		return false
	}
	if filter.AudienceType != "" && a.Audience.Type != filter.AudienceType {
		return false
	}
	switch filter.Status {
	case domain.AlertStatusActive:
		return a.IsActiveAt(now)
	case domain.AlertStatusExpired:
		return a.IsExpiredAt(now)
	}
	return true
}

func (s *service) ListDeliveries(ctx context.Context, id uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NotificationDelivery], error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return domain.PaginatedResponse[domain.NotificationDelivery]{}, err
	}

	params.Validate()
	deliveries, total, err := s.deliveryRepo.ListByAlert(ctx, id, params)
	if err != nil {
		return domain.PaginatedResponse[domain.NotificationDelivery]{}, err
	}

	return domain.NewPaginatedResponse(deliveries, params.Page, params.PageSize, total), nil
}
