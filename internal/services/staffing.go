package services

import (
	"context"
	"errors"
	"fmt"

	"eventstaffing/internal/domain"
)

// staffingService is the employment engine: capacity-gated creation, the
// declared transition table, rating updates, and unconditional deletion.
type staffingService struct {
	employmentRepo domain.EmploymentRepository
	positionRepo   domain.JobPositionRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	authorizer     domain.Authorizer
	emailService   domain.EmailService
}

func NewStaffingService(employmentRepo domain.EmploymentRepository,
	positionRepo domain.JobPositionRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	authorizer domain.Authorizer,
	emailService domain.EmailService,
) domain.EmploymentService {
	return &staffingService{
		employmentRepo: employmentRepo,
		positionRepo:   positionRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		authorizer:     authorizer,
		emailService:   emailService,
	}
}

// create runs the ordered validation sequence: event ended, then duplicate
// registration, then capacity. The order is load-bearing: an ended event
// always wins, and a duplicate is never reported as "position full". The
// capacity ceiling itself is enforced by the repository's guarded insert,
// so it also holds when concurrent writers race past these pre-checks.
func (s *staffingService) create(ctx context.Context, userID, positionID string, state domain.EmploymentState, rating int) (*domain.Employment, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

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
	if event.Ended(domain.Today()) {
		return nil, domain.ErrEventEnded
	}

	if _, err := s.employmentRepo.GetByUserAndPosition(ctx, userID, positionID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get employment: %w", err)
	}

	employment := &domain.Employment{
		Rating:     rating,
		State:      state,
		UserID:     userID,
		PositionID: positionID,
	}
	if err := s.employmentRepo.Create(ctx, employment); err != nil {
		if errors.Is(err, domain.ErrPositionFull) || errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create employment: %w", err)
	}
	return employment, nil
}

func (s *staffingService) Register(ctx context.Context, userID, positionID string) (*domain.Employment, error) {
	return s.create(ctx, userID, positionID, domain.EmploymentPending, 0)
}

func (s *staffingService) Assign(ctx context.Context, requester *domain.User, userID, positionID string) (*domain.Employment, error) {
	if _, _, err := s.requireManage(ctx, requester, positionID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.create(ctx, userID, positionID, domain.EmploymentAccepted, 0)
}

func (s *staffingService) GetByID(ctx context.Context, id string) (*domain.Employment, error) {
	employment, err := s.employmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employment: %w", err)
	}
	return employment, nil
}

func (s *staffingService) List(ctx context.Context, filter domain.EmploymentFilter) ([]*domain.Employment, error) {
	employments, err := s.employmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list employments: %w", err)
	}
	return employments, nil
}

// requireManageEmployment resolves employment -> position -> event and
// checks the requester against the position's parent event.
func (s *staffingService) requireManageEmployment(ctx context.Context, requester *domain.User, id string) (*domain.Employment, *domain.JobPosition, *domain.Event, error) {
	employment, err := s.employmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get employment: %w", err)
	}
	position, event, err := s.requireManage(ctx, requester, employment.PositionID)
	if err != nil {
		return nil, nil, nil, err
	}
	return employment, position, event, nil
}

func (s *staffingService) requireManage(ctx context.Context, requester *domain.User, positionID string) (*domain.JobPosition, *domain.Event, error) {
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get position: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, position.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	ok, err := s.authorizer.CanManageEvent(ctx, requester, event)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.ErrForbidden
	}
	return position, event, nil
}

func (s *staffingService) ChangeState(ctx context.Context, requester *domain.User, id string, state domain.EmploymentState) (*domain.Employment, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidInput, state)
	}
	employment, position, event, err := s.requireManageEmployment(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if !employment.State.CanTransition(state) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, employment.State, state)
	}
	updated, err := s.employmentRepo.SetState(ctx, id, state)
	if err != nil {
		if errors.Is(err, domain.ErrPositionFull) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set state: %w", err)
	}

	if state == domain.EmploymentAccepted || state == domain.EmploymentRejected {
		s.notifyDecision(ctx, updated, position, event, state == domain.EmploymentAccepted)
	}
	return updated, nil
}

// notifyDecision emails the worker about the accept/reject decision.
// Best-effort: a send failure never fails the transition.
func (s *staffingService) notifyDecision(ctx context.Context, employment *domain.Employment, position *domain.JobPosition, event *domain.Event, accepted bool) {
	if s.emailService == nil {
		return
	}
	worker, err := s.userRepo.GetByID(ctx, employment.UserID)
	if err != nil || worker.Email == "" {
		return
	}
	_ = s.emailService.SendEmploymentDecision(ctx, &domain.EmploymentDecisionEmailData{
		Email:        worker.Email,
		FirstName:    worker.FirstName,
		EventName:    event.Name,
		PositionName: position.Name,
		Accepted:     accepted,
	})
}

func (s *staffingService) SetRating(ctx context.Context, requester *domain.User, id string, rating int) (*domain.Employment, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if _, _, _, err := s.requireManageEmployment(ctx, requester, id); err != nil {
		return nil, err
	}
	updated, err := s.employmentRepo.SetRating(ctx, id, rating)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set rating: %w", err)
	}
	return updated, nil
}

// Delete is unconditional: no business rule blocks removing an employment
// in any state; not-found is the only failure mode.
func (s *staffingService) Delete(ctx context.Context, requester *domain.User, id string) error {
	if _, _, _, err := s.requireManageEmployment(ctx, requester, id); err != nil {
		return err
	}
	if err := s.employmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete employment: %w", err)
	}
	return nil
}
