package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

const cacheKey = "analytics:summary"

type Service interface {
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

type service struct {
	alertRepo    repository.AlertRepository
	deliveryRepo repository.DeliveryRepository
	prefRepo     repository.PreferenceRepository
	redis        *redis.Client
	cacheTTL     time.Duration
}

func NewService(
	alertRepo repository.AlertRepository,
	deliveryRepo repository.DeliveryRepository,
	prefRepo repository.PreferenceRepository,
	redis *redis.Client,
	cacheTTL time.Duration,
) Service {
	return &service{
		alertRepo:    alertRepo,
		deliveryRepo: deliveryRepo,
		prefRepo:     prefRepo,
		redis:        redis,
		cacheTTL:     cacheTTL,
	}
}

func (s *service) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	if s.redis != nil && s.cacheTTL > 0 {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary domain.AnalyticsSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	alerts, err := s.alertRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	deliveryCounts, err := s.deliveryRepo.CountByAlert(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.AnalyticsSummary{
		TotalAlerts:       int64(len(alerts)),
		DeliveryByAlert:   make(map[string]int64),
		ReadByAlert:       make(map[string]int64),
		SnoozedByAlert:    make(map[string]int64),
		SeverityBreakdown: map[string]int64{
			string(domain.SeverityInfo):     0,
			string(domain.SeverityWarning):  0,
			string(domain.SeverityCritical): 0,
		},
	}

	for _, a := range alerts {
		summary.SeverityBreakdown[string(a.Severity)]++
	}

	for alertID, count := range deliveryCounts {
		summary.DeliveryByAlert[alertID.String()] = count
		summary.TotalDeliveries += count
	}

	for _, p := range prefs {
		if p.ReadState == domain.ReadStateRead {
			summary.ReadByAlert[p.AlertID.String()]++
		}
		if p.LastSnoozedAt != nil {
			summary.SnoozedByAlert[p.AlertID.String()]++
		}
	}

	if s.redis != nil && s.cacheTTL > 0 {
		if summaryJSON, err := json.Marshal(summary); err == nil {
			_ = s.redis.Set(ctx, cacheKey, summaryJSON, s.cacheTTL).Err()
		}
	}

	return summary, nil
}
