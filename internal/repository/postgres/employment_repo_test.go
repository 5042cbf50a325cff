package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventstaffing/internal/domain"
)

func TestEmploymentRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		employment *domain.Employment
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		errIs      error
		wantID     string
	}{
		{
			name:       "pending insert is unguarded",
			employment: &domain.Employment{State: domain.EmploymentPending, UserID: "u-1", PositionID: "p-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO employments`).
					WithArgs(0, "pending", "u-1", "p-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("emp-1"))
			},
			wantID: "emp-1",
		},
		{
			name:       "accepted insert passes the capacity guard",
			employment: &domain.Employment{State: domain.EmploymentAccepted, UserID: "u-1", PositionID: "p-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO employments`).
					WithArgs(0, "accepted", "u-1", "p-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("emp-2"))
			},
			wantID: "emp-2",
		},
		{
			name:       "accepted insert into a full position",
			employment: &domain.Employment{State: domain.EmploymentAccepted, UserID: "u-1", PositionID: "p-1"},
			mock: func(mock sqlmock.Sqlmock) {
				// The guarded insert selects no row when the position is at capacity.
				mock.ExpectQuery(`INSERT INTO employments`).
					WithArgs(0, "accepted", "u-1", "p-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantErr: true,
			errIs:   domain.ErrPositionFull,
		},
		{
			name:       "duplicate registration",
			employment: &domain.Employment{State: domain.EmploymentPending, UserID: "u-1", PositionID: "p-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO employments`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRegistered,
		},
		{
			name:       "db error",
			employment: &domain.Employment{State: domain.EmploymentPending, UserID: "u-1", PositionID: "p-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO employments`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewEmploymentRepository(db)
			err = repo.Create(ctx, tt.employment)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, tt.employment.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmploymentRepository_SetState(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "rating", "state", "user_id", "position_id"}

	t.Run("accept passes the guard", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE employments`).
			WithArgs("emp-1", "accepted").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("emp-1", 0, "accepted", "u-1", "p-1"))

		repo := NewEmploymentRepository(db)
		e, err := repo.SetState(ctx, "emp-1", domain.EmploymentAccepted)
		require.NoError(t, err)
		require.Equal(t, domain.EmploymentAccepted, e.State)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accept into a full position", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// The guarded update matched no row; the follow-up lookup finds the
		// employment, so the failure is the capacity ceiling.
		mock.ExpectQuery(`UPDATE employments`).
			WithArgs("emp-1", "accepted").
			WillReturnRows(sqlmock.NewRows(cols))
		mock.ExpectQuery(`SELECT (.+) FROM employments WHERE id`).
			WithArgs("emp-1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("emp-1", 0, "pending", "u-1", "p-1"))

		repo := NewEmploymentRepository(db)
		_, err = repo.SetState(ctx, "emp-1", domain.EmploymentAccepted)
		require.ErrorIs(t, err, domain.ErrPositionFull)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("accept of a missing employment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE employments`).
			WithArgs("nope", "accepted").
			WillReturnRows(sqlmock.NewRows(cols))
		mock.ExpectQuery(`SELECT (.+) FROM employments WHERE id`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewEmploymentRepository(db)
		_, err = repo.SetState(ctx, "nope", domain.EmploymentAccepted)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reject is unguarded", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE employments`).
			WithArgs("emp-1", "rejected").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("emp-1", 0, "rejected", "u-1", "p-1"))

		repo := NewEmploymentRepository(db)
		e, err := repo.SetState(ctx, "emp-1", domain.EmploymentRejected)
		require.NoError(t, err)
		require.Equal(t, domain.EmploymentRejected, e.State)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmploymentRepository_SetRating(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "rating", "state", "user_id", "position_id"}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE employments SET rating`).
		WithArgs("emp-1", 5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("emp-1", 5, "pending", "u-1", "p-1"))

	repo := NewEmploymentRepository(db)
	e, err := repo.SetRating(ctx, "emp-1", 5)
	require.NoError(t, err)
	require.Equal(t, 5, e.Rating)
	// Rating writes never touch state.
	require.Equal(t, domain.EmploymentPending, e.State)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmploymentRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM employments`).
			WithArgs("emp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEmploymentRepository(db)
		require.NoError(t, repo.Delete(ctx, "emp-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM employments`).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEmploymentRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmploymentRepository_CountOccupying(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employments`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewEmploymentRepository(db)
	count, err := repo.CountOccupying(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
