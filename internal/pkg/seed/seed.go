package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
	"org-alerts/internal/service/alert"
)

//go:embed seeds.yaml
var defaultFixture []byte

// Fixture references teams and users by name so files stay readable.
type Fixture struct {
	Teams  []TeamSeed  `yaml:"teams"`
	Users  []UserSeed  `yaml:"users"`
	Alerts []AlertSeed `yaml:"alerts"`
}

type TeamSeed struct {
	Name string `yaml:"name"`
}

type UserSeed struct {
	Name string `yaml:"name"`
	Team string `yaml:"team"`
}

type AlertSeed struct {
	Title                    string          `yaml:"title"`
	Message                  string          `yaml:"message"`
	Severity                 domain.Severity `yaml:"severity"`
	ReminderFrequencyMinutes *int            `yaml:"reminder_frequency_minutes"`
	RemindersEnabled         *bool           `yaml:"reminders_enabled"`
	Audience                 AudienceSeed    `yaml:"audience"`
}

type AudienceSeed struct {
	Type  domain.AudienceType `yaml:"type"`
	Teams []string            `yaml:"teams"`
	Users []string            `yaml:"users"`
}

// Load reads the fixture at path, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse seed fixture: %w", err)
	}
	return &fx, nil
}

type Service interface {
	// Apply loads fx unless the store already holds teams. It reports
	// whether anything was written.
	Apply(ctx context.Context, fx *Fixture) (bool, error)
	Snapshot(ctx context.Context) (*domain.SeedSnapshot, error)
}

type service struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	alerts   alert.Service
}

func NewService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, alerts alert.Service) Service {
	return &service{
		teamRepo: teamRepo,
		userRepo: userRepo,
		alerts:   alerts,
	}
}

func (s *service) Apply(ctx context.Context, fx *Fixture) (bool, error) {
	count, err := s.teamRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	teamIDs := make(map[string]uuid.UUID, len(fx.Teams))
	for _, ts := range fx.Teams {
		team := &domain.Team{ID: uuid.New(), Name: ts.Name}
		if err := s.teamRepo.Create(ctx, team); err != nil {
			return false, fmt.Errorf("failed to seed team %s: %w", ts.Name, err)
		}
		teamIDs[ts.Name] = team.ID
	}

	userIDs := make(map[string]uuid.UUID, len(fx.Users))
	for _, us := range fx.Users {
		user := &domain.User{ID: uuid.New(), Name: us.Name}
		if us.Team != "" {
			teamID, ok := teamIDs[us.Team]
			if !ok {
				return false, fmt.Errorf("user %s references unknown team %s", us.Name, us.Team)
			}
			user.TeamID = &teamID
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", us.Name, err)
		}
		userIDs[us.Name] = user.ID
	}

	for _, as := range fx.Alerts {
		scope, err := resolveAudience(as.Audience, teamIDs, userIDs)
		if err != nil {
			return false, fmt.Errorf("alert %s: %w", as.Title, err)
		}
		_, err = s.alerts.Create(ctx, domain.CreateAlertInput{
			Title:                    as.Title,
			Message:                  as.Message,
			Severity:                 as.Severity,
			Audience:                 scope,
			ReminderFrequencyMinutes: as.ReminderFrequencyMinutes,
			RemindersEnabled:         as.RemindersEnabled,
		})
		if err != nil {
			return false, fmt.Errorf("failed to seed alert %s: %w", as.Title, err)
		}
	}

	return true, nil
}

func resolveAudience(a AudienceSeed, teamIDs, userIDs map[string]uuid.UUID) (domain.AudienceScope, error) {
	scope := domain.AudienceScope{Type: a.Type}
	for _, name := range a.Teams {
		id, ok := teamIDs[name]
		if !ok {
			return scope, fmt.Errorf("unknown team %s", name)
		}
		scope.TeamIDs = append(scope.TeamIDs, id)
	}
	for _, name := range a.Users {
		id, ok := userIDs[name]
		if !ok {
			return scope, fmt.Errorf("unknown user %s", name)
		}
		scope.UserIDs = append(scope.UserIDs, id)
	}
	return scope, scope.Validate()
}

func (s *service) Snapshot(ctx context.Context) (*domain.SeedSnapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	if users == nil {
		users = []domain.User{}
	}
	return &domain.SeedSnapshot{Teams: teams, Users: users}, nil
}
