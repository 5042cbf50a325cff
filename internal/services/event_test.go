package services

import (
	"context"
	"testing"
	"time"

	"eventstaffing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventWorld bundles the fakes behind an event service under test.
type eventWorld struct {
	users    *fakeUserRepo
	venues   *fakeVenueRepo
	events   *fakeEventRepo
	managers *fakeManagerRepo
	svc      domain.EventService

	owner *domain.User
	venue *domain.Venue
}

func newEventWorld(t *testing.T) *eventWorld {
	t.Helper()
	w := &eventWorld{
		users:    newFakeUserRepo(),
		venues:   newFakeVenueRepo(),
		events:   newFakeEventRepo(),
		managers: newFakeManagerRepo(),
	}
	w.svc = NewEventService(w.events, w.venues, w.users, w.managers, NewAuthzService(w.managers), time.Second)

	w.owner = w.users.add(&domain.User{Username: "owner", Role: domain.RoleOrganizer})
	w.venue = &domain.Venue{Name: "Letiste"}
	require.NoError(t, w.venues.Create(context.Background(), w.venue))
	return w
}

func (w *eventWorld) createEvent(t *testing.T, days int) *domain.Event {
	t.Helper()
	event := &domain.Event{
		Name:      "Open Air",
		DateStart: domain.Today(),
		DateEnd:   domain.Today().AddDate(0, 0, days-1),
		VenueID:   w.venue.ID,
	}
	require.NoError(t, w.svc.CreateEvent(context.Background(), w.owner, event))
	return event
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("requester becomes owner", func(t *testing.T) {
		w := newEventWorld(t)
		event := w.createEvent(t, 2)
		assert.Equal(t, w.owner.ID, event.OwnerID)
		assert.NotEmpty(t, event.ID)
	})

	t.Run("window must be ordered", func(t *testing.T) {
		w := newEventWorld(t)
		event := &domain.Event{
			Name:      "Backwards",
			DateStart: domain.Today(),
			DateEnd:   domain.Today().AddDate(0, 0, -1),
			VenueID:   w.venue.ID,
		}
		require.ErrorIs(t, w.svc.CreateEvent(ctx, w.owner, event), domain.ErrInvalidInput)
	})

	t.Run("single-day window is valid", func(t *testing.T) {
		w := newEventWorld(t)
		event := &domain.Event{
			Name:      "One Night",
			DateStart: domain.Today(),
			DateEnd:   domain.Today(),
			VenueID:   w.venue.ID,
		}
		require.NoError(t, w.svc.CreateEvent(ctx, w.owner, event))
	})

	t.Run("unknown venue", func(t *testing.T) {
		w := newEventWorld(t)
		event := &domain.Event{
			Name:      "Nowhere",
			DateStart: domain.Today(),
			DateEnd:   domain.Today(),
			VenueID:   "nope",
		}
		require.ErrorIs(t, w.svc.CreateEvent(ctx, w.owner, event), domain.ErrNotFound)
	})
}

func TestUpdateEventAuthorization(t *testing.T) {
	ctx := context.Background()
	newName := "Renamed"

	t.Run("owner can update", func(t *testing.T) {
		w := newEventWorld(t)
		event := w.createEvent(t, 2)
		updated, err := w.svc.UpdateEvent(ctx, w.owner, event.ID, domain.EventPatch{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
	})

	t.Run("admin can update", func(t *testing.T) {
		w := newEventWorld(t)
		event := w.createEvent(t, 2)
		admin := w.users.add(&domain.User{Username: "admin", Role: domain.RoleAdmin})
		_, err := w.svc.UpdateEvent(ctx, admin, event.ID, domain.EventPatch{Name: &newName})
		require.NoError(t, err)
	})

	t.Run("manager relation can update", func(t *testing.T) {
		w := newEventWorld(t)
		event := w.createEvent(t, 2)
		manager := w.users.add(&domain.User{Username: "manager", Role: domain.RoleEmployee})
		require.NoError(t, w.svc.AddManager(ctx, w.owner, event.ID, manager.ID))
		_, err := w.svc.UpdateEvent(ctx, manager, event.ID, domain.EventPatch{Name: &newName})
		require.NoError(t, err)
	})

	t.Run("unrelated user is forbidden", func(t *testing.T) {
		w := newEventWorld(t)
		event := w.createEvent(t, 2)
		stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
		_, err := w.svc.UpdateEvent(ctx, stranger, event.ID, domain.EventPatch{Name: &newName})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUpdateEventWindow(t *testing.T) {
	ctx := context.Background()
	w := newEventWorld(t)
	event := w.createEvent(t, 3)

	// Moving the end before the start must fail, even though each side is a
	// valid date on its own.
	badEnd := domain.Today().AddDate(0, 0, -2)
	_, err := w.svc.UpdateEvent(ctx, w.owner, event.ID, domain.EventPatch{DateEnd: &badEnd})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Moving both sides together is fine.
	newStart := domain.Today().AddDate(0, 0, 5)
	newEnd := domain.Today().AddDate(0, 0, 6)
	updated, err := w.svc.UpdateEvent(ctx, w.owner, event.ID, domain.EventPatch{DateStart: &newStart, DateEnd: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, domain.Day(newStart), updated.DateStart)
	assert.Equal(t, domain.Day(newEnd), updated.DateEnd)
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	w := newEventWorld(t)
	event := w.createEvent(t, 2)
	manager := w.users.add(&domain.User{Username: "manager", Role: domain.RoleEmployee})

	require.NoError(t, w.svc.AddManager(ctx, w.owner, event.ID, manager.ID))

	t.Run("duplicate grant conflicts", func(t *testing.T) {
		require.ErrorIs(t, w.svc.AddManager(ctx, w.owner, event.ID, manager.ID), domain.ErrAlreadyManager)
	})

	t.Run("list returns the manager", func(t *testing.T) {
		managers, err := w.svc.ListManagers(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, managers, 1)
		assert.Equal(t, manager.ID, managers[0].ID)
	})

	t.Run("unknown user cannot be granted", func(t *testing.T) {
		require.ErrorIs(t, w.svc.AddManager(ctx, w.owner, event.ID, "nope"), domain.ErrNotFound)
	})

	t.Run("non-manager cannot grant", func(t *testing.T) {
		stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
		other := w.users.add(&domain.User{Username: "other", Role: domain.RoleEmployee})
		require.ErrorIs(t, w.svc.AddManager(ctx, stranger, event.ID, other.ID), domain.ErrForbidden)
	})

	t.Run("remove revokes access", func(t *testing.T) {
		require.NoError(t, w.svc.RemoveManager(ctx, w.owner, event.ID, manager.ID))
		name := "x"
		_, err := w.svc.UpdateEvent(ctx, manager, event.ID, domain.EventPatch{Name: &name})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("removing a non-manager is not found", func(t *testing.T) {
		require.ErrorIs(t, w.svc.RemoveManager(ctx, w.owner, event.ID, manager.ID), domain.ErrNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	w := newEventWorld(t)
	event := w.createEvent(t, 2)

	stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
	require.ErrorIs(t, w.svc.DeleteEvent(ctx, stranger, event.ID), domain.ErrForbidden)

	require.NoError(t, w.svc.DeleteEvent(ctx, w.owner, event.ID))
	_, err := w.svc.GetEventByID(ctx, event.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListManagedEvents(t *testing.T) {
	ctx := context.Background()
	w := newEventWorld(t)
	first := w.createEvent(t, 2)
	second := w.createEvent(t, 3)
	manager := w.users.add(&domain.User{Username: "manager", Role: domain.RoleEmployee})

	events, err := w.svc.ListEventsManagedByUser(ctx, manager.ID)
	require.NoError(t, err)
	require.Empty(t, events)

	require.NoError(t, w.svc.AddManager(ctx, w.owner, first.ID, manager.ID))
	require.NoError(t, w.svc.AddManager(ctx, w.owner, second.ID, manager.ID))

	events, err = w.svc.ListEventsManagedByUser(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Ownership alone is not a manager relation.
	events, err = w.svc.ListEventsManagedByUser(ctx, w.owner.ID)
	require.NoError(t, err)
	require.Empty(t, events)

	require.NoError(t, w.svc.RemoveManager(ctx, w.owner, first.ID, manager.ID))
	events, err = w.svc.ListEventsManagedByUser(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, second.ID, events[0].ID)
}
