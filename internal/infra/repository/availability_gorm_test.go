package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salutech-dev/medbook-api/internal/timezone"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestGetActiveAffiliation_NotFoundIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "clinic_affiliations"`).
		WithArgs(uint(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	aff, err := repo.GetActiveAffiliation(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, aff, "missing affiliation is not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveAffiliation_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	rows := sqlmock.NewRows([]string{"id", "provider_id", "clinic_id", "doctor_id", "active"}).
		AddRow(1, 42, 3, 42, true)
	mock.ExpectQuery(`SELECT \* FROM "clinic_affiliations"`).
		WithArgs(uint(42), 1).
		WillReturnRows(rows)

	aff, err := repo.GetActiveAffiliation(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, aff)
	assert.Equal(t, uint(3), aff.ClinicID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBranch_ScopedByProvider(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "provider_branches" WHERE id = .+ AND provider_id = .+`).
		WithArgs(uint(9), uint(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	branch, err := repo.GetBranch(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.Nil(t, branch, "a branch of another provider resolves to nothing")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBranchSchedule_ScopedByOwnerAndDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "owner_type", "owner_id", "day_of_week",
		"enabled", "start_time", "end_time",
	}).AddRow(5, "branch", 7, 3, true, "09:00", "17:00")

	mock.ExpectQuery(`SELECT \* FROM "weekly_schedules"`).
		WithArgs("branch", uint(7), 3, 1).
		WillReturnRows(rows)

	entry, err := repo.GetBranchSchedule(context.Background(), 7, 3)

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "09:00", entry.StartTime)
	assert.True(t, entry.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookedStarts_ExcludesTerminalStatuses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	from := time.Date(2026, 9, 3, 9, 0, 0, 0, timezone.Civil)
	to := time.Date(2026, 9, 3, 17, 0, 0, 0, timezone.Civil)
	booked := time.Date(2026, 9, 3, 10, 0, 0, 0, timezone.Civil)

	mock.ExpectQuery(`SELECT "scheduled_for" FROM "appointments" WHERE provider_id = .+ AND status NOT IN`).
		WithArgs(uint(1), "cancelled", "rejected", "deleted", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"scheduled_for"}).AddRow(booked))

	starts, err := repo.ListBookedStarts(context.Background(), 1, from, to)

	require.NoError(t, err)
	require.Len(t, starts, 1)
	assert.True(t, starts[0].Equal(booked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListApprovedDateBlocks_FiltersStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityGormRepository(db)

	rows := sqlmock.NewRows([]string{"id", "clinic_id", "doctor_id", "date", "status"}).
		AddRow(9, 3, 5, "2026-09-03", "approved")

	mock.ExpectQuery(`SELECT \* FROM "date_block_requests"`).
		WithArgs(uint(3), uint(5), "2026-09-03", "approved").
		WillReturnRows(rows)

	reqs, err := repo.ListApprovedDateBlocks(context.Background(), 3, 5, "2026-09-03")

	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].FullDay())
	assert.NoError(t, mock.ExpectationsWereMet())
}
