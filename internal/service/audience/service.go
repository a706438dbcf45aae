package audience

import (
	"context"

	"github.com/google/uuid"

	"org-alerts/internal/domain"
	"org-alerts/internal/repository"
)

// Resolve expands scope into the users it targets, preserving the order of
// users. Unknown ids match nothing.
func Resolve(scope domain.AudienceScope, users []domain.User) []domain.User {
	recipients := make([]domain.User, 0, len(users))
	for _, u := range users {
		if Includes(scope, u) {
			recipients = append(recipients, u)
		}
	}
	return recipients
}

// Includes reports whether user is targeted by scope.
func Includes(scope domain.AudienceScope, user domain.User) bool {
	switch scope.Type {
	case domain.AudienceOrganization:
		return true
	case domain.AudienceTeams:
		if user.TeamID == nil {
			return false
		}
		return containsID(scope.TeamIDs, *user.TeamID)
	case domain.AudienceUsers:
		return containsID(scope.UserIDs, user.ID)
	default:
		return false
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type Service interface {
	Recipients(ctx context.Context, scope domain.AudienceScope) ([]domain.User, error)
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Recipients(ctx context.Context, scope domain.AudienceScope) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(scope, users), nil
}
