package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventstaffing/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	userRepo       domain.UserRepository
	managerRepo    domain.EventManagerRepository
	authorizer     domain.Authorizer
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	userRepo domain.UserRepository,
	managerRepo domain.EventManagerRepository,
	authorizer domain.Authorizer,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		userRepo:       userRepo,
		managerRepo:    managerRepo,
		authorizer:     authorizer,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, requester *domain.User, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		event.OwnerID = requester.ID
	}
	event.DateStart = domain.Day(event.DateStart)
	event.DateEnd = domain.Day(event.DateEnd)
	if event.DateEnd.Before(event.DateStart) {
		return fmt.Errorf("%w: date_end precedes date_start", domain.ErrInvalidInput)
	}
	if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListEventsWorkedByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListWorkedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list worked events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListEventsManagedByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	relations, err := s.managerRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list manager relations: %w", err)
	}
	events := make([]*domain.Event, 0, len(relations))
	for _, rel := range relations {
		event, err := s.eventRepo.GetByID(ctx, rel.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// requireManage loads the event and short-circuits with ErrForbidden before
// any mutation when the requester may not manage it.
func (s *eventService) requireManage(ctx context.Context, requester *domain.User, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
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
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, requester *domain.User, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireManage(ctx, requester, eventID)
	if err != nil {
		return nil, err
	}

	// The window must stay ordered after a partial update.
	start, end := domain.Day(event.DateStart), domain.Day(event.DateEnd)
	if patch.DateStart != nil {
		start = domain.Day(*patch.DateStart)
	}
	if patch.DateEnd != nil {
		end = domain.Day(*patch.DateEnd)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: date_end precedes date_start", domain.ErrInvalidInput)
	}
	if patch.VenueID != nil {
		if _, err := s.venueRepo.GetByID(ctx, *patch.VenueID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get venue: %w", err)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, requester *domain.User, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireManage(ctx, requester, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) AddManager(ctx context.Context, requester *domain.User, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireManage(ctx, requester, eventID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.managerRepo.Add(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyManager) {
			return domain.ErrAlreadyManager
		}
		return fmt.Errorf("add manager: %w", err)
	}
	return nil
}

func (s *eventService) RemoveManager(ctx context.Context, requester *domain.User, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireManage(ctx, requester, eventID); err != nil {
		return err
	}
	if err := s.managerRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove manager: %w", err)
	}
	return nil
}

func (s *eventService) ListManagers(ctx context.Context, eventID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	relations, err := s.managerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list manager relations: %w", err)
	}
	managers := make([]*domain.User, 0, len(relations))
	for _, rel := range relations {
		user, err := s.userRepo.GetByID(ctx, rel.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Relation outlived the user; skip it.
				continue
			}
			return nil, fmt.Errorf("get manager: %w", err)
		}
		managers = append(managers, user)
	}
	return managers, nil
}
