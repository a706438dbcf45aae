package preference

import (
	"context"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

type Service interface {
	Get(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error)
	SetReadState(ctx context.Context, alertID, userID uuid.UUID, state domain.ReadState) (*domain.UserAlertPreference, error)
	SnoozeForToday(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error)
	IsSnoozedForToday(ctx context.Context, alertID, userID uuid.UUID, now time.Time) (bool, error)
	// SnoozedOn is the pure form of IsSnoozedForToday for callers that
	// already hold the record.
	SnoozedOn(pref *domain.UserAlertPreference, now time.Time) bool
	SetClock(now func() time.Time)
}

type service struct {
	prefRepo repository.PreferenceRepository
	location *time.Location
	now      func() time.Time
}

// NewService uses loc to decide calendar days; nil means time.Local.
func NewService(prefRepo repository.PreferenceRepository, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		prefRepo: prefRepo,
		location: loc,
		now:      time.Now,
	}
}

func (s *service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *service) Get(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error) {
	pref, err := s.prefRepo.Get(ctx, alertID, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, domain.ErrPreferenceNotFound
	}
	return pref, nil
}

func (s *service) SetReadState(ctx context.Context, alertID, userID uuid.UUID, state domain.ReadState) (*domain.UserAlertPreference, error) {
	now := s.now()
	return s.prefRepo.FindOrCreate(ctx, alertID, userID, func(p *domain.UserAlertPreference) {
		p.ReadState = state
		p.UpdatedAt = now
	})
}

func (s *service) SnoozeForToday(ctx context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error) {
	now := s.now()
	return s.prefRepo.FindOrCreate(ctx, alertID, userID, func(p *domain.UserAlertPreference) {
		snoozedAt := now
		p.LastSnoozedAt = &snoozedAt
		p.UpdatedAt = now
	})
}

func (s *service) IsSnoozedForToday(ctx context.Context, alertID, userID uuid.UUID, now time.Time) (bool, error) {
	pref, err := s.prefRepo.Get(ctx, alertID, userID)
	if err != nil {
		return false, err
	}
	return s.SnoozedOn(pref, now), nil
}

func (s *service) SnoozedOn(pref *domain.UserAlertPreference, now time.Time) bool {
	if pref == nil || pref.LastSnoozedAt == nil {
		return false
	}
	return sameDay(*pref.LastSnoozedAt, now, s.location)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
