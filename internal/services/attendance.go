package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventstaffing/internal/domain"
)

// attendanceService is the date-scoped attendance ledger.
type attendanceService struct {
	workedHoursRepo domain.WorkedHoursRepository
	employmentRepo  domain.EmploymentRepository
	positionRepo    domain.JobPositionRepository
	eventRepo       domain.EventRepository
}

func NewAttendanceService(workedHoursRepo domain.WorkedHoursRepository,
	employmentRepo domain.EmploymentRepository,
	positionRepo domain.JobPositionRepository,
	eventRepo domain.EventRepository,
) domain.AttendanceService {
	return &attendanceService{
		workedHoursRepo: workedHoursRepo,
		employmentRepo:  employmentRepo,
		positionRepo:    positionRepo,
		eventRepo:       eventRepo,
	}
}

// resolveChain loads employment -> position -> event.
func (s *attendanceService) resolveChain(ctx context.Context, employmentID string) (*domain.Employment, *domain.Event, error) {
	employment, err := s.employmentRepo.GetByID(ctx, employmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get employment: %w", err)
	}
	position, err := s.positionRepo.GetByID(ctx, employment.PositionID)
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
	return employment, event, nil
}

func (s *attendanceService) LogHours(ctx context.Context, requester *domain.User, employmentID string, date time.Time, hoursWorked float64, existingID *string) (*domain.WorkedHours, error) {
	// Field-level bound, checked independent of the state and window rules.
	if hoursWorked < domain.MinHoursWorked || hoursWorked > domain.MaxHoursWorked {
		return nil, fmt.Errorf("%w: hours must be between %.0f and %.0f", domain.ErrInvalidInput, domain.MinHoursWorked, domain.MaxHoursWorked)
	}

	employment, event, err := s.resolveChain(ctx, employmentID)
	if err != nil {
		return nil, err
	}
	// Only the worker who owns the employment logs its hours.
	if requester == nil || requester.ID != employment.UserID {
		return nil, domain.ErrForbidden
	}
	if employment.State != domain.EmploymentAccepted {
		return nil, domain.ErrEmploymentNotAccepted
	}
	if !event.InWindow(date) {
		return nil, domain.ErrOutsideEventWindow
	}

	if existingID != nil {
		entry, err := s.workedHoursRepo.GetByID(ctx, *existingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get entry: %w", err)
		}
		if entry.EmploymentID != employmentID {
			return nil, domain.ErrForbidden
		}
		updated, err := s.workedHoursRepo.UpdateHours(ctx, *existingID, hoursWorked)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("update entry: %w", err)
		}
		return updated, nil
	}

	if _, err := s.workedHoursRepo.GetByEmploymentAndDate(ctx, employmentID, date); err == nil {
		return nil, domain.ErrDuplicateDay
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get entry for day: %w", err)
	}

	entry := &domain.WorkedHours{
		Date:         domain.Day(date),
		HoursWorked:  hoursWorked,
		EmploymentID: employmentID,
	}
	if err := s.workedHoursRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateDay) {
			return nil, domain.ErrDuplicateDay
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// Ledger returns one day per calendar day of the owning event's inclusive
// window, in date order. Days without a logged entry carry a nil entry, so
// callers can render a complete day-by-day ledger.
func (s *attendanceService) Ledger(ctx context.Context, employmentID string) ([]domain.LedgerDay, error) {
	employment, event, err := s.resolveChain(ctx, employmentID)
	if err != nil {
		return nil, err
	}
	entries, err := s.workedHoursRepo.ListByEmploymentID(ctx, employment.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	byDay := make(map[time.Time]*domain.WorkedHours, len(entries))
	for _, e := range entries {
		byDay[domain.Day(e.Date)] = e
	}
	days := domain.DaysBetween(event.DateStart, event.DateEnd)
	ledger := make([]domain.LedgerDay, 0, len(days))
	for _, day := range days {
		ledger = append(ledger, domain.LedgerDay{Date: day, Entry: byDay[day]})
	}
	return ledger, nil
}
