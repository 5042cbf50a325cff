package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventstaffing/internal/domain"
)

type jobPositionService struct {
	positionRepo   domain.JobPositionRepository
	eventRepo      domain.EventRepository
	categoryRepo   domain.PositionCategoryRepository
	employmentRepo domain.EmploymentRepository
	authorizer     domain.Authorizer
}

func NewJobPositionService(positionRepo domain.JobPositionRepository,
	eventRepo domain.EventRepository,
	categoryRepo domain.PositionCategoryRepository,
	employmentRepo domain.EmploymentRepository,
	authorizer domain.Authorizer,
) domain.JobPositionService {
	return &jobPositionService{
		positionRepo:   positionRepo,
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		employmentRepo: employmentRepo,
		authorizer:     authorizer,
	}
}

func validatePositionFields(salary float64, currency domain.SalaryCurrency, capacity int) error {
	if salary < 0 {
		return fmt.Errorf("%w: salary cannot be negative", domain.ErrInvalidInput)
	}
	if !currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, currency)
	}
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}

func (s *jobPositionService) CreatePosition(ctx context.Context, requester *domain.User, position *domain.JobPosition) error {
	if err := validatePositionFields(position.Salary, position.Currency, position.Capacity); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, position.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	ok, err := s.authorizer.CanManageEvent(ctx, requester, event)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	// No new position under an event that has already ended.
	if event.Ended(domain.Today()) {
		return domain.ErrEventEnded
	}
	if _, err := s.categoryRepo.GetByID(ctx, position.PositionCategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}

	position.CreatedAt = time.Now()
	position.UpdatedAt = time.Now()

	return s.positionRepo.Create(ctx, position)
}

func (s *jobPositionService) GetPositionByID(ctx context.Context, positionID string) (*domain.JobPosition, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return position, nil
}

func (s *jobPositionService) GetPositionOccupancy(ctx context.Context, positionID string) (*domain.PositionOccupancy, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	occupied, err := s.employmentRepo.CountOccupying(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("count occupying: %w", err)
	}
	return &domain.PositionOccupancy{
		PositionID: position.ID,
		Occupied:   occupied,
		Capacity:   position.Capacity,
	}, nil
}

func (s *jobPositionService) ListPositions(ctx context.Context, filter domain.JobPositionFilter) ([]*domain.JobPosition, error) {
	positions, err := s.positionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

func (s *jobPositionService) ListPositionsWorkedByUser(ctx context.Context, userID, eventID string) ([]*domain.JobPosition, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	positions, err := s.positionRepo.ListWorkedByUserOnEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list worked positions: %w", err)
	}
	return positions, nil
}

// requireManage resolves the position's parent event and short-circuits
// with ErrForbidden when the requester may not manage it.
func (s *jobPositionService) requireManage(ctx context.Context, requester *domain.User, positionID string) (*domain.JobPosition, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, position.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ok, err := s.authorizer.CanManageEvent(ctx, requester, event)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return position, nil
}

func (s *jobPositionService) UpdatePosition(ctx context.Context, requester *domain.User, positionID string, patch domain.JobPositionPatch) (*domain.JobPosition, error) {
	position, err := s.requireManage(ctx, requester, positionID)
	if err != nil {
		return nil, err
	}

	salary, currency, capacity := position.Salary, position.Currency, position.Capacity
	if patch.Salary != nil {
		salary = *patch.Salary
	}
	if patch.Currency != nil {
		currency = *patch.Currency
	}
	if patch.Capacity != nil {
		capacity = *patch.Capacity
	}
	if err := validatePositionFields(salary, currency, capacity); err != nil {
		return nil, err
	}
	if patch.PositionCategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *patch.PositionCategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}

	updated, err := s.positionRepo.Update(ctx, positionID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update position: %w", err)
	}
	return updated, nil
}

func (s *jobPositionService) DeletePosition(ctx context.Context, requester *domain.User, positionID string) error {
	if _, err := s.requireManage(ctx, requester, positionID); err != nil {
		return err
	}
	if err := s.positionRepo.Delete(ctx, positionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}
