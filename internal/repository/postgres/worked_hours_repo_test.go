package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventstaffing/internal/domain"
)

func TestWorkedHoursRepository_Create(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   *domain.WorkedHours
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name:  "success normalizes the date to a day",
			entry: &domain.WorkedHours{Date: day.Add(13 * time.Hour), HoursWorked: 8, EmploymentID: "emp-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO worked_hours`).
					WithArgs(day, 8.0, "emp-1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("wh-1"))
			},
		},
		{
			name:  "duplicate day",
			entry: &domain.WorkedHours{Date: day, HoursWorked: 8, EmploymentID: "emp-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO worked_hours`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateDay,
		},
		{
			name:  "db error",
			entry: &domain.WorkedHours{Date: day, HoursWorked: 8, EmploymentID: "emp-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO worked_hours`).
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

			repo := NewWorkedHoursRepository(db)
			err = repo.Create(ctx, tt.entry)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, "wh-1", tt.entry.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWorkedHoursRepository_UpdateHours(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "date", "hours_worked", "employment_id"}
	day := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	t.Run("overwrites hours only", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE worked_hours SET hours_worked`).
			WithArgs("wh-1", 10.0).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("wh-1", day, 10.0, "emp-1"))

		repo := NewWorkedHoursRepository(db)
		w, err := repo.UpdateHours(ctx, "wh-1", 10)
		require.NoError(t, err)
		require.Equal(t, 10.0, w.HoursWorked)
		require.Equal(t, day, w.Date)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE worked_hours SET hours_worked`).
			WithArgs("nope", 10.0).
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewWorkedHoursRepository(db)
		_, err = repo.UpdateHours(ctx, "nope", 10)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWorkedHoursRepository_GetByEmploymentAndDate(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "date", "hours_worked", "employment_id"}
	day := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Lookup with a mid-day timestamp still hits the normalized day key.
	mock.ExpectQuery(`SELECT (.+) FROM worked_hours WHERE employment_id`).
		WithArgs("emp-1", day).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("wh-1", day, 8.0, "emp-1"))

	repo := NewWorkedHoursRepository(db)
	w, err := repo.GetByEmploymentAndDate(ctx, "emp-1", day.Add(9*time.Hour))
	require.NoError(t, err)
	require.Equal(t, "wh-1", w.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
