package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eventstaffing/internal/domain"
)

// In-memory repository fakes shared by the service tests. They mirror the
// postgres repositories' contracts, including the capacity guard and the
// uniqueness constraints, so the services can be exercised end to end
// without a database.

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.nextID)
		f.nextID++
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.byID {
		if filter.Username != nil && u.Username != *filter.Username {
			continue
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeVenueRepo is an in-memory VenueRepository.
type fakeVenueRepo struct {
	byID   map[string]*domain.Venue
	nextID int
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byID: make(map[string]*domain.Venue), nextID: 1}
}

func (f *fakeVenueRepo) Create(_ context.Context, v *domain.Venue) error {
	if v.ID == "" {
		v.ID = fmt.Sprintf("venue-%d", f.nextID)
		f.nextID++
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) List(_ context.Context) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVenueRepo) Update(_ context.Context, v *domain.Venue) error {
	if _, ok := f.byID[v.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCategoryRepo is an in-memory PositionCategoryRepository.
type fakeCategoryRepo struct {
	byID   map[string]*domain.PositionCategory
	nextID int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.PositionCategory), nextID: 1}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.PositionCategory) error {
	if c.ID == "" {
		c.ID = fmt.Sprintf("cat-%d", f.nextID)
		f.nextID++
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.PositionCategory, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*domain.PositionCategory, error) {
	var out []*domain.PositionCategory
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *domain.PositionCategory) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEventRepo is an in-memory EventRepository.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	worked map[string][]*domain.Event // userID -> events, for ListWorkedByUser
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		worked: make(map[string][]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.OwnerID != nil && e.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.VenueID != nil && e.VenueID != *filter.VenueID {
			continue
		}
		if filter.IsDraft != nil && e.IsDraft != *filter.IsDraft {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListWorkedByUser(_ context.Context, userID string) ([]*domain.Event, error) {
	return f.worked[userID], nil
}

func (f *fakeEventRepo) Update(_ context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.DateStart != nil {
		e.DateStart = domain.Day(*patch.DateStart)
	}
	if patch.DateEnd != nil {
		e.DateEnd = domain.Day(*patch.DateEnd)
	}
	if patch.ImgURL != nil {
		e.ImgURL = *patch.ImgURL
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.IsDraft != nil {
		e.IsDraft = *patch.IsDraft
	}
	if patch.VenueID != nil {
		e.VenueID = *patch.VenueID
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePositionRepo is an in-memory JobPositionRepository.
type fakePositionRepo struct {
	byID   map[string]*domain.JobPosition
	nextID int

	// set by newFakeEmploymentRepo; the employment repo itself needs the
	// position repo for its capacity guard
	employments *fakeEmploymentRepo
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{byID: make(map[string]*domain.JobPosition), nextID: 1}
}

func (f *fakePositionRepo) Create(_ context.Context, p *domain.JobPosition) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("pos-%d", f.nextID)
		f.nextID++
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakePositionRepo) GetByID(_ context.Context, id string) (*domain.JobPosition, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePositionRepo) List(_ context.Context, filter domain.JobPositionFilter) ([]*domain.JobPosition, error) {
	var out []*domain.JobPosition
	for _, p := range f.byID {
		if filter.EventID != nil && p.EventID != *filter.EventID {
			continue
		}
		if filter.PositionCategoryID != nil && p.PositionCategoryID != *filter.PositionCategoryID {
			continue
		}
		if filter.IsOpenedForRegistration != nil && p.IsOpenedForRegistration != *filter.IsOpenedForRegistration {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePositionRepo) ListWorkedByUserOnEvent(_ context.Context, userID, eventID string) ([]*domain.JobPosition, error) {
	out := make([]*domain.JobPosition, 0)
	if f.employments == nil {
		return out, nil
	}
	for _, e := range f.employments.byID {
		if e.UserID != userID || !e.State.OccupiesSlot() {
			continue
		}
		p, ok := f.byID[e.PositionID]
		if !ok || p.EventID != eventID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakePositionRepo) Update(_ context.Context, id string, patch domain.JobPositionPatch) (*domain.JobPosition, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Salary != nil {
		p.Salary = *patch.Salary
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Capacity != nil {
		p.Capacity = *patch.Capacity
	}
	if patch.InstructionsHTML != nil {
		p.InstructionsHTML = *patch.InstructionsHTML
	}
	if patch.IsOpenedForRegistration != nil {
		p.IsOpenedForRegistration = *patch.IsOpenedForRegistration
	}
	if patch.PositionCategoryID != nil {
		p.PositionCategoryID = *patch.PositionCategoryID
	}
	return p, nil
}

func (f *fakePositionRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeEmploymentRepo is an in-memory EmploymentRepository. It enforces the
// same guards as the postgres one: the (user, position) uniqueness and the
// capacity ceiling on slot-occupying writes.
type fakeEmploymentRepo struct {
	byID      map[string]*domain.Employment
	positions *fakePositionRepo
	nextID    int
}

func newFakeEmploymentRepo(positions *fakePositionRepo) *fakeEmploymentRepo {
	f := &fakeEmploymentRepo{
		byID:      make(map[string]*domain.Employment),
		positions: positions,
		nextID:    1,
	}
	positions.employments = f
	return f
}

func (f *fakeEmploymentRepo) occupying(positionID, excludeID string) int {
	n := 0
	for _, e := range f.byID {
		if e.PositionID == positionID && e.ID != excludeID && e.State.OccupiesSlot() {
			n++
		}
	}
	return n
}

func (f *fakeEmploymentRepo) capacity(positionID string) int {
	if p, ok := f.positions.byID[positionID]; ok {
		return p.Capacity
	}
	return 0
}

func (f *fakeEmploymentRepo) Create(_ context.Context, e *domain.Employment) error {
	for _, existing := range f.byID {
		if existing.UserID == e.UserID && existing.PositionID == e.PositionID {
			return domain.ErrAlreadyRegistered
		}
	}
	if e.State.OccupiesSlot() && f.occupying(e.PositionID, "") >= f.capacity(e.PositionID) {
		return domain.ErrPositionFull
	}
	e.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmploymentRepo) GetByID(_ context.Context, id string) (*domain.Employment, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmploymentRepo) GetByUserAndPosition(_ context.Context, userID, positionID string) (*domain.Employment, error) {
	for _, e := range f.byID {
		if e.UserID == userID && e.PositionID == positionID {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmploymentRepo) List(_ context.Context, filter domain.EmploymentFilter) ([]*domain.Employment, error) {
	var out []*domain.Employment
	for _, e := range f.byID {
		if filter.PositionID != nil && e.PositionID != *filter.PositionID {
			continue
		}
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.State != nil && e.State != *filter.State {
			continue
		}
		if filter.Rating != nil && e.Rating != *filter.Rating {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmploymentRepo) CountOccupying(_ context.Context, positionID string) (int, error) {
	return f.occupying(positionID, ""), nil
}

func (f *fakeEmploymentRepo) SetState(_ context.Context, id string, state domain.EmploymentState) (*domain.Employment, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if state.OccupiesSlot() && !e.State.OccupiesSlot() &&
		f.occupying(e.PositionID, e.ID) >= f.capacity(e.PositionID) {
		return nil, domain.ErrPositionFull
	}
	e.State = state
	return e, nil
}

func (f *fakeEmploymentRepo) SetRating(_ context.Context, id string, rating int) (*domain.Employment, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Rating = rating
	return e, nil
}

func (f *fakeEmploymentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeWorkedHoursRepo is an in-memory WorkedHoursRepository enforcing the
// one-entry-per-day uniqueness.
type fakeWorkedHoursRepo struct {
	byID   map[string]*domain.WorkedHours
	nextID int
}

func newFakeWorkedHoursRepo() *fakeWorkedHoursRepo {
	return &fakeWorkedHoursRepo{byID: make(map[string]*domain.WorkedHours), nextID: 1}
}

func (f *fakeWorkedHoursRepo) Create(_ context.Context, w *domain.WorkedHours) error {
	day := domain.Day(w.Date)
	for _, existing := range f.byID {
		if existing.EmploymentID == w.EmploymentID && domain.Day(existing.Date).Equal(day) {
			return domain.ErrDuplicateDay
		}
	}
	w.ID = fmt.Sprintf("wh-%d", f.nextID)
	f.nextID++
	w.Date = day
	f.byID[w.ID] = w
	return nil
}

func (f *fakeWorkedHoursRepo) GetByID(_ context.Context, id string) (*domain.WorkedHours, error) {
	if w, ok := f.byID[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWorkedHoursRepo) GetByEmploymentAndDate(_ context.Context, employmentID string, date time.Time) (*domain.WorkedHours, error) {
	day := domain.Day(date)
	for _, w := range f.byID {
		if w.EmploymentID == employmentID && domain.Day(w.Date).Equal(day) {
			return w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWorkedHoursRepo) ListByEmploymentID(_ context.Context, employmentID string) ([]*domain.WorkedHours, error) {
	var out []*domain.WorkedHours
	for _, w := range f.byID {
		if w.EmploymentID == employmentID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeWorkedHoursRepo) UpdateHours(_ context.Context, id string, hoursWorked float64) (*domain.WorkedHours, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	w.HoursWorked = hoursWorked
	return w, nil
}

func (f *fakeWorkedHoursRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeManagerRepo is an in-memory EventManagerRepository.
type fakeManagerRepo struct {
	relations map[string]map[string]bool // eventID -> userID
}

func newFakeManagerRepo() *fakeManagerRepo {
	return &fakeManagerRepo{relations: make(map[string]map[string]bool)}
}

func (f *fakeManagerRepo) Add(_ context.Context, eventID, userID string) error {
	if f.relations[eventID][userID] {
		return domain.ErrAlreadyManager
	}
	if f.relations[eventID] == nil {
		f.relations[eventID] = make(map[string]bool)
	}
	f.relations[eventID][userID] = true
	return nil
}

func (f *fakeManagerRepo) Exists(_ context.Context, eventID, userID string) (bool, error) {
	return f.relations[eventID][userID], nil
}

func (f *fakeManagerRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.EventManagerRelation, error) {
	var out []*domain.EventManagerRelation
	for userID := range f.relations[eventID] {
		out = append(out, &domain.EventManagerRelation{UserID: userID, EventID: eventID})
	}
	return out, nil
}

func (f *fakeManagerRepo) ListByUserID(_ context.Context, userID string) ([]*domain.EventManagerRelation, error) {
	var out []*domain.EventManagerRelation
	for eventID, users := range f.relations {
		if users[userID] {
			out = append(out, &domain.EventManagerRelation{UserID: userID, EventID: eventID})
		}
	}
	return out, nil
}

func (f *fakeManagerRepo) Remove(_ context.Context, eventID, userID string) error {
	if !f.relations[eventID][userID] {
		return domain.ErrNotFound
	}
	delete(f.relations[eventID], userID)
	return nil
}

// sentEmail records one SendEmploymentDecision call.
type sentEmail struct {
	to       string
	accepted bool
}

// fakeEmailService records decision emails instead of sending them.
type fakeEmailService struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailService) SendEmploymentDecision(_ context.Context, data *domain.EmploymentDecisionEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: data.Email, accepted: data.Accepted})
	return nil
}
