package services

import (
	"context"
	"fmt"

	"eventstaffing/internal/domain"
)

type authzService struct {
	managerRepo domain.EventManagerRepository
}

// NewAuthzService creates the Authorizer backing every event-scoped
// mutation. The predicate reads the manager relation store on each call;
// nothing is cached across requests because relations change between them.
func NewAuthzService(managerRepo domain.EventManagerRepository) domain.Authorizer {
	return &authzService{managerRepo: managerRepo}
}

func (s *authzService) CanManageEvent(ctx context.Context, user *domain.User, event *domain.Event) (bool, error) {
	if user == nil || event == nil {
		return false, nil
	}
	if user.Role == domain.RoleAdmin {
		return true, nil
	}
	if user.ID == event.OwnerID {
		return true, nil
	}
	isManager, err := s.managerRepo.Exists(ctx, event.ID, user.ID)
	if err != nil {
		return false, fmt.Errorf("check manager relation: %w", err)
	}
	return isManager, nil
}
