package services

import (
	"context"
	"testing"

	"eventstaffing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// positionWorld bundles the fakes behind a position service under test.
type positionWorld struct {
	users       *fakeUserRepo
	events      *fakeEventRepo
	positions   *fakePositionRepo
	categories  *fakeCategoryRepo
	employments *fakeEmploymentRepo
	managers    *fakeManagerRepo
	svc         domain.JobPositionService

	owner    *domain.User
	event    *domain.Event
	category *domain.PositionCategory
}

func newPositionWorld(t *testing.T) *positionWorld {
	t.Helper()
	w := &positionWorld{
		users:      newFakeUserRepo(),
		events:     newFakeEventRepo(),
		positions:  newFakePositionRepo(),
		categories: newFakeCategoryRepo(),
		managers:   newFakeManagerRepo(),
	}
	w.employments = newFakeEmploymentRepo(w.positions)
	w.svc = NewJobPositionService(w.positions, w.events, w.categories, w.employments, NewAuthzService(w.managers))

	w.owner = w.users.add(&domain.User{Username: "owner", Role: domain.RoleOrganizer})
	w.event = &domain.Event{
		Name:      "Vinobrani",
		DateStart: domain.Today(),
		DateEnd:   domain.Today().AddDate(0, 0, 1),
		OwnerID:   w.owner.ID,
	}
	require.NoError(t, w.events.Create(context.Background(), w.event))
	w.category = &domain.PositionCategory{Name: "Bar"}
	require.NoError(t, w.categories.Create(context.Background(), w.category))
	return w
}

func (w *positionWorld) validPosition() *domain.JobPosition {
	return &domain.JobPosition{
		Name:               "Bartender",
		Salary:             180,
		Currency:           domain.CurrencyCZK,
		Capacity:           2,
		EventID:            w.event.ID,
		PositionCategoryID: w.category.ID,
	}
}

func TestCreatePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("owner creates", func(t *testing.T) {
		w := newPositionWorld(t)
		position := w.validPosition()
		require.NoError(t, w.svc.CreatePosition(ctx, w.owner, position))
		assert.NotEmpty(t, position.ID)
	})

	t.Run("field validation", func(t *testing.T) {
		w := newPositionWorld(t)

		bad := w.validPosition()
		bad.Salary = -1
		require.ErrorIs(t, w.svc.CreatePosition(ctx, w.owner, bad), domain.ErrInvalidInput)

		bad = w.validPosition()
		bad.Currency = "USD"
		require.ErrorIs(t, w.svc.CreatePosition(ctx, w.owner, bad), domain.ErrInvalidInput)

		bad = w.validPosition()
		bad.Capacity = 0
		require.ErrorIs(t, w.svc.CreatePosition(ctx, w.owner, bad), domain.ErrInvalidInput)
	})

	t.Run("non-manager is forbidden", func(t *testing.T) {
		w := newPositionWorld(t)
		stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
		require.ErrorIs(t, w.svc.CreatePosition(ctx, stranger, w.validPosition()), domain.ErrForbidden)
	})

	t.Run("ended event rejects new positions", func(t *testing.T) {
		w := newPositionWorld(t)
		w.event.DateStart = domain.Today().AddDate(0, 0, -3)
		w.event.DateEnd = domain.Today().AddDate(0, 0, -1)
		require.ErrorIs(t, w.svc.CreatePosition(ctx, w.owner, w.validPosition()), domain.ErrEventEnded)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := newPositionWorld(t)
		position := w.validPosition()
		position.PositionCategoryID = "nope"
		require.ErrorIs(t, w.svc.CreatePosition(ctx, w.owner, position), domain.ErrNotFound)
	})
}

func TestUpdatePosition(t *testing.T) {
	ctx := context.Background()

	t.Run("patch is re-validated against merged fields", func(t *testing.T) {
		w := newPositionWorld(t)
		position := w.validPosition()
		require.NoError(t, w.svc.CreatePosition(ctx, w.owner, position))

		zero := 0
		_, err := w.svc.UpdatePosition(ctx, w.owner, position.ID, domain.JobPositionPatch{Capacity: &zero})
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		more := 5
		updated, err := w.svc.UpdatePosition(ctx, w.owner, position.ID, domain.JobPositionPatch{Capacity: &more})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Capacity)
	})

	t.Run("non-manager is forbidden", func(t *testing.T) {
		w := newPositionWorld(t)
		position := w.validPosition()
		require.NoError(t, w.svc.CreatePosition(ctx, w.owner, position))

		stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
		name := "x"
		_, err := w.svc.UpdatePosition(ctx, stranger, position.ID, domain.JobPositionPatch{Name: &name})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDeletePosition(t *testing.T) {
	ctx := context.Background()
	w := newPositionWorld(t)
	position := w.validPosition()
	require.NoError(t, w.svc.CreatePosition(ctx, w.owner, position))

	stranger := w.users.add(&domain.User{Username: "stranger", Role: domain.RoleOrganizer})
	require.ErrorIs(t, w.svc.DeletePosition(ctx, stranger, position.ID), domain.ErrForbidden)

	require.NoError(t, w.svc.DeletePosition(ctx, w.owner, position.ID))
	_, err := w.svc.GetPositionByID(ctx, position.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPositionOccupancy(t *testing.T) {
	ctx := context.Background()
	w := newPositionWorld(t)
	position := w.validPosition()
	require.NoError(t, w.svc.CreatePosition(ctx, w.owner, position))

	occupancy, err := w.svc.GetPositionOccupancy(ctx, position.ID)
	require.NoError(t, err)
	require.Equal(t, 0, occupancy.Occupied)
	require.Equal(t, 2, occupancy.Capacity)

	worker := w.users.add(&domain.User{Username: "worker", Role: domain.RoleEmployee})
	pending := w.users.add(&domain.User{Username: "hopeful", Role: domain.RoleEmployee})
	require.NoError(t, w.employments.Create(ctx, &domain.Employment{
		State: domain.EmploymentAccepted, UserID: worker.ID, PositionID: position.ID,
	}))
	require.NoError(t, w.employments.Create(ctx, &domain.Employment{
		State: domain.EmploymentPending, UserID: pending.ID, PositionID: position.ID,
	}))

	// Only accepted and done employments fill a slot.
	occupancy, err = w.svc.GetPositionOccupancy(ctx, position.ID)
	require.NoError(t, err)
	require.Equal(t, 1, occupancy.Occupied)
	require.Equal(t, position.ID, occupancy.PositionID)

	_, err = w.svc.GetPositionOccupancy(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWorkedPositions(t *testing.T) {
	ctx := context.Background()
	w := newPositionWorld(t)

	bar := w.validPosition()
	require.NoError(t, w.svc.CreatePosition(ctx, w.owner, bar))
	stage := w.validPosition()
	stage.Name = "Stagehand"
	require.NoError(t, w.svc.CreatePosition(ctx, w.owner, stage))
	gate := w.validPosition()
	gate.Name = "Gatekeeper"
	require.NoError(t, w.svc.CreatePosition(ctx, w.owner, gate))

	worker := w.users.add(&domain.User{Username: "worker", Role: domain.RoleEmployee})
	require.NoError(t, w.employments.Create(ctx, &domain.Employment{
		State: domain.EmploymentDone, UserID: worker.ID, PositionID: bar.ID,
	}))
	require.NoError(t, w.employments.Create(ctx, &domain.Employment{
		State: domain.EmploymentAccepted, UserID: worker.ID, PositionID: stage.ID,
	}))
	// A pending employment is not a worked position.
	require.NoError(t, w.employments.Create(ctx, &domain.Employment{
		State: domain.EmploymentPending, UserID: worker.ID, PositionID: gate.ID,
	}))

	positions, err := w.svc.ListPositionsWorkedByUser(ctx, worker.ID, w.event.ID)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	require.Equal(t, "Bartender", positions[0].Name)
	require.Equal(t, "Stagehand", positions[1].Name)

	other := w.users.add(&domain.User{Username: "other", Role: domain.RoleEmployee})
	positions, err = w.svc.ListPositionsWorkedByUser(ctx, other.ID, w.event.ID)
	require.NoError(t, err)
	require.Empty(t, positions)

	_, err = w.svc.ListPositionsWorkedByUser(ctx, worker.ID, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
