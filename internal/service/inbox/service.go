package inbox

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
	"org-alerts/internal/service/audience"
	"org-alerts/internal/service/preference"
)

// Service is the recipient-facing view of alerts.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.UserAlert, error)
	SetReadState(ctx context.Context, alertID, userID uuid.UUID, state domain.ReadState) (*domain.UserAlertPreference, error)
	Snooze(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error)
}

type service struct {
	alertRepo    repository.AlertRepository
	userRepo     repository.UserRepository
	deliveryRepo repository.DeliveryRepository
	prefs        preference.Service
}

func NewService(
	alertRepo repository.AlertRepository,
	userRepo repository.UserRepository,
	deliveryRepo repository.DeliveryRepository,
	prefs preference.Service,
) Service {
	return &service{
		alertRepo:    alertRepo,
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		prefs:        prefs,
	}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.UserAlert, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UserAlert, 0)
	for i := range alerts {
		a := alerts[i]
		if !a.IsActiveAt(now) || !audience.Includes(a.Audience, *user) {
			continue
		}

		state, err := s.userState(ctx, a.ID, user.ID, now)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.UserAlert{Alert: a, UserState: state})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *service) userState(ctx context.Context, alertID, userID uuid.UUID, now time.Time) (domain.UserAlertState, error) {
	state := domain.UserAlertState{ReadState: domain.ReadStateUnread}

	pref, err := s.prefs.Get(ctx, alertID, userID)
	switch {
	case err == nil:
		state.ReadState = pref.ReadState
		state.SnoozedToday = s.prefs.SnoozedOn(pref, now)
	case !errors.Is(err, domain.ErrPreferenceNotFound):
		return state, err
	}

	last, err := s.deliveryRepo.LastDeliveredAt(ctx, alertID, userID)
	if err != nil {
		return state, err
	}
	state.LastDeliveredAt = last

	return state, nil
}

func (s *service) SetReadState(ctx context.Context, alertID, userID uuid.UUID, state domain.ReadState) (*domain.UserAlertPreference, error) {
	if err := s.ensureExists(ctx, alertID, userID); err != nil {
		return nil, err
	}
	return s.prefs.SetReadState(ctx, alertID, userID, state)
}

func (s *service) Snooze(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error) {
	if err := s.ensureExists(ctx, alertID, userID); err != nil {
		return nil, err
	}
	return s.prefs.SnoozeForToday(ctx, alertID, userID)
}

func (s *service) ensureExists(ctx context.Context, alertID, userID uuid.UUID) error {
	a, err := s.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrAlertNotFound
	}
	_, err = s.getUser(ctx, userID)
	return err
}

func (s *service) getUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
