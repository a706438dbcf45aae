// Package memory provides process-local implementations of the repository
// interfaces. Every read returns copies so callers never alias stored records.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Alert:      NewAlertRepository(),
		Team:       NewTeamRepository(),
		User:       NewUserRepository(),
		Delivery:   NewDeliveryRepository(),
		Preference: NewPreferenceRepository(),
	}
}

type alertRepository struct {
	mu     sync.RWMutex
	alerts map[uuid.UUID]domain.Alert
	order  []uuid.UUID
}

func NewAlertRepository() repository.AlertRepository {
	return &alertRepository{alerts: make(map[uuid.UUID]domain.Alert)}
}

func (r *alertRepository) Create(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.alerts[alert.ID]; !exists {
		r.order = append(r.order, alert.ID)
	}
	r.alerts[alert.ID] = alert.Clone()
	return nil
}

func (r *alertRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, ok := r.alerts[id]
	if !ok {
		return nil, nil
	}
	out := alert.Clone()
	return &out, nil
}

func (r *alertRepository) Update(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.alerts[alert.ID]; !ok {
		return domain.ErrAlertNotFound
	}
	r.alerts[alert.ID] = alert.Clone()
	return nil
}

func (r *alertRepository) List(_ context.Context) ([]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := make([]domain.Alert, 0, len(r.order))
	for _, id := range r.order {
		alerts = append(alerts, r.alerts[id].Clone())
	}
	return alerts, nil
}

type teamRepository struct {
	mu    sync.RWMutex
	teams []domain.Team
}

func NewTeamRepository() repository.TeamRepository {
	return &teamRepository{}
}

func (r *teamRepository) Create(_ context.Context, team *domain.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = append(r.teams, *team)
	return nil
}

func (r *teamRepository) List(_ context.Context) ([]domain.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Team(nil), r.teams...), nil
}

func (r *teamRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.teams)), nil
}

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, copyUser(*user))
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func copyUser(u domain.User) domain.User {
	if u.TeamID != nil {
		teamID := *u.TeamID
		u.TeamID = &teamID
	}
	return u
}

type deliveryRepository struct {
	mu         sync.RWMutex
	deliveries []domain.NotificationDelivery
}

func NewDeliveryRepository() repository.DeliveryRepository {
	return &deliveryRepository{}
}

func (r *deliveryRepository) Create(_ context.Context, delivery *domain.NotificationDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, *delivery)
	return nil
}

func (r *deliveryRepository) LastDeliveredAt(_ context.Context, alertID, userID uuid.UUID) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Records may be appended out of timestamp order, so take the maximum.
	var last *time.Time
	for i := range r.deliveries {
		d := r.deliveries[i]
		if d.AlertID != alertID || d.UserID != userID {
			continue
		}
		if last == nil || d.DeliveredAt.After(*last) {
			t := d.DeliveredAt
			last = &t
		}
	}
	return last, nil
}

func (r *deliveryRepository) ListByAlert(_ context.Context, alertID uuid.UUID, params domain.PaginationParams) ([]domain.NotificationDelivery, int64, error) {
	params.Validate()

	r.mu.RLock()
	var matched []domain.NotificationDelivery
	for _, d := range r.deliveries {
		if d.AlertID == alertID {
			matched = append(matched, d)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DeliveredAt.After(matched[j].DeliveredAt)
	})

	start, end := params.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (r *deliveryRepository) CountByAlert(_ context.Context) (map[uuid.UUID]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uuid.UUID]int64)
	for _, d := range r.deliveries {
		counts[d.AlertID]++
	}
	return counts, nil
}

type preferenceKey struct {
	alertID uuid.UUID
	userID  uuid.UUID
}

type preferenceRepository struct {
	mu    sync.Mutex
	prefs map[preferenceKey]*domain.UserAlertPreference
	order []preferenceKey
}

func NewPreferenceRepository() repository.PreferenceRepository {
	return &preferenceRepository{prefs: make(map[preferenceKey]*domain.UserAlertPreference)}
}

func (r *preferenceRepository) Get(_ context.Context, alertID, userID uuid.UUID) (*domain.UserAlertPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pref, ok := r.prefs[preferenceKey{alertID: alertID, userID: userID}]
	if !ok {
		return nil, nil
	}
	return copyPreference(pref), nil
}

func (r *preferenceRepository) FindOrCreate(_ context.Context, alertID, userID uuid.UUID, mutate func(*domain.UserAlertPreference)) (*domain.UserAlertPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := preferenceKey{alertID: alertID, userID: userID}
	pref, ok := r.prefs[key]
	if !ok {
		pref = domain.NewUserAlertPreference(alertID, userID, time.Now())
		r.prefs[key] = pref
		r.order = append(r.order, key)
	}
	mutate(pref)
	return copyPreference(pref), nil
}

func (r *preferenceRepository) List(_ context.Context) ([]domain.UserAlertPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs := make([]domain.UserAlertPreference, 0, len(r.order))
	for _, key := range r.order {
		prefs = append(prefs, *copyPreference(r.prefs[key]))
	}
	return prefs, nil
}

func copyPreference(p *domain.UserAlertPreference) *domain.UserAlertPreference {
	out := *p
	if p.LastSnoozedAt != nil {
		t := *p.LastSnoozedAt
		out.LastSnoozedAt = &t
	}
	return &out
}
