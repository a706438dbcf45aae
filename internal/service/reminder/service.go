package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"org-alerts/internal/domain"
	"org-alerts/internal/pkg/logging"
	"org-alerts/internal/repository"
	"org-alerts/internal/service/audience"
	"org-alerts/internal/service/delivery"
	"org-alerts/internal/service/preference"
)

const (
	leaseKey        = "reminder:pass:lease"
	defaultLeaseTTL = 2 * time.Minute
)

// Only the holder of the lease token may delete it.
var releaseLease = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Options struct {
	// DedupeWithinPass emits each (alert, user) pair at most once per pass.
	DedupeWithinPass bool
	LeaseTTL         time.Duration
}

type Service interface {
	// Evaluate returns the pairs that are due at now without dispatching
	// anything or touching stored state.
	Evaluate(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error)
	// Run evaluates and dispatches, returning the pairs for which at least
	// one channel delivered.
	Run(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error)
}

type service struct {
	alertRepo    repository.AlertRepository
	userRepo     repository.UserRepository
	deliveryRepo repository.DeliveryRepository
	prefs        preference.Service
	dispatcher   delivery.Service
	redis        *redis.Client
	log          *logrus.Logger
	opts         Options

	mu sync.Mutex
}

func NewService(
	alertRepo repository.AlertRepository,
	userRepo repository.UserRepository,
	deliveryRepo repository.DeliveryRepository,
	prefs preference.Service,
	dispatcher delivery.Service,
	redis *redis.Client,
	log *logrus.Logger,
	opts Options,
) Service {
	if log == nil {
		log = logging.Discard()
	}
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = defaultLeaseTTL
	}
	return &service{
		alertRepo:    alertRepo,
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		prefs:        prefs,
		dispatcher:   dispatcher,
		redis:        redis,
		log:          log,
		opts:         opts,
	}
}

// IsDue reports whether a reminder is due given the last delivery. Elapsed
// time is counted in whole minutes, truncated.
func IsDue(last *time.Time, now time.Time, frequencyMinutes int) bool {
	if last == nil {
		return true
	}
	elapsed := int64(now.Sub(*last) / time.Minute)
	return elapsed >= int64(frequencyMinutes)
}

func (s *service) Evaluate(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error) {
	alerts, users, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := s.newSeen()
	decisions := make([]domain.ReminderDelivery, 0)
	for i := range alerts {
		decisions = append(decisions, s.decide(ctx, &alerts[i], users, now, seen)...)
	}

	sortDeliveries(decisions)
	return decisions, nil
}

func (s *service) Run(ctx context.Context, now time.Time) ([]domain.ReminderDelivery, error) {
	if !s.mu.TryLock() {
		return nil, domain.ErrPassInProgress
	}
	defer s.mu.Unlock()

	release, err := s.acquireLease(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	alerts, users, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Work for an alert that has started is finished even if ctx is cancelled.
	workCtx := context.WithoutCancel(ctx)
	seen := s.newSeen()
	issued := make([]domain.ReminderDelivery, 0)

	for i := range alerts {
		if err := ctx.Err(); err != nil {
			sortDeliveries(issued)
			s.log.WithError(err).WithField("issued", len(issued)).Warn("reminder pass cancelled")
			return issued, err
		}

		alert := &alerts[i]
		for _, decision := range s.decide(workCtx, alert, users, now, seen) {
			records, err := s.dispatcher.DeliverToUser(workCtx, alert, decision.UserID, now)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"alert_id": alert.ID,
					"user_id":  decision.UserID,
					"channels": alert.DeliveryChannels,
				}).WithError(err).Warn("delivery failed")
			}
			if len(records) > 0 {
				issued = append(issued, decision)
			}
		}
	}

	sortDeliveries(issued)
	s.log.WithFields(logrus.Fields{
		"now":    now,
		"alerts": len(alerts),
		"issued": len(issued),
	}).Info("reminder pass finished")

	return issued, nil
}

func (s *service) snapshot(ctx context.Context) ([]domain.Alert, []domain.User, error) {
	alerts, err := s.alertRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}
	return alerts, users, nil
}

func (s *service) newSeen() map[domain.ReminderDelivery]struct{} {
	if !s.opts.DedupeWithinPass {
		return nil
	}
	return make(map[domain.ReminderDelivery]struct{})
}

// decide computes the due pairs for one alert. Lookup failures skip only the
// recipient concerned.
func (s *service) decide(ctx context.Context, alert *domain.Alert, users []domain.User, now time.Time, seen map[domain.ReminderDelivery]struct{}) []domain.ReminderDelivery {
	if !alert.RemindersEnabled || !alert.IsActiveAt(now) {
		return nil
	}

	var decisions []domain.ReminderDelivery
	for _, user := range audience.Resolve(alert.Audience, users) {
		entry := s.log.WithFields(logrus.Fields{"alert_id": alert.ID, "user_id": user.ID})

		last, err := s.deliveryRepo.LastDeliveredAt(ctx, alert.ID, user.ID)
		if err != nil {
			entry.WithError(err).Warn("failed to read last delivery")
			continue
		}
		if !IsDue(last, now, alert.ReminderFrequencyMinutes) {
			continue
		}

		snoozed, err := s.prefs.IsSnoozedForToday(ctx, alert.ID, user.ID, now)
		if err != nil {
			entry.WithError(err).Warn("failed to read snooze state")
			continue
		}
		if snoozed {
			entry.Debug("reminder suppressed by snooze")
			continue
		}

		pair := domain.ReminderDelivery{AlertID: alert.ID, UserID: user.ID}
		if seen != nil {
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
		}
		decisions = append(decisions, pair)
	}
	return decisions
}

func (s *service) acquireLease(ctx context.Context) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}

	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, leaseKey, token, s.opts.LeaseTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reminder lease: %w", err)
	}
	if !ok {
		return nil, domain.ErrPassInProgress
	}

	return func() {
		err := releaseLease.Run(context.Background(), s.redis, []string{leaseKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("failed to release reminder lease")
		}
	}, nil
}

func sortDeliveries(ds []domain.ReminderDelivery) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].AlertID != ds[j].AlertID {
			return ds[i].AlertID.String() < ds[j].AlertID.String()
		}
		return ds[i].UserID.String() < ds[j].UserID.String()
	})
}
