package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendance(userID, date string, checkIn time.Time, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{
		UserID:      userID,
		Username:    userID,
		Location:    attendance.Location{Lat: 23.0457, Lng: 72.5647},
		CheckInTime: checkIn,
		Date:        date,
		Status:      status,
	}
}

func TestAttendanceRepository_InsertIfAbsent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	checkIn := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	created, err := repo.InsertIfAbsent(ctx, newAttendance("EMP-1", "2025-06-15", checkIn, attendance.StatusPresent))
	require.NoError(t, err)
	assert.Equal(t, checkIn, created.CheckInTime)
	assert.Nil(t, created.CheckOutTime)

	_, err = repo.InsertIfAbsent(ctx, newAttendance("EMP-1", "2025-06-15", checkIn.Add(time.Hour), attendance.StatusLate))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	got, err := repo.GetByUserAndDate(ctx, "EMP-1", "2025-06-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusPresent, got.Status)

	none, err := repo.GetByUserAndDate(ctx, "EMP-1", "2025-06-16")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	checkIn := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.InsertIfAbsent(ctx, newAttendance("EMP-RACE", "2025-06-15", checkIn, attendance.StatusPresent))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_SetCheckOut(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	checkIn := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	created, err := repo.InsertIfAbsent(ctx, newAttendance("EMP-2", "2025-06-15", checkIn, attendance.StatusPresent))
	require.NoError(t, err)

	checkOut := checkIn.Add(8 * time.Hour)
	require.NoError(t, repo.SetCheckOut(ctx, created.ID, checkOut))

	err = repo.SetCheckOut(ctx, created.ID, checkOut.Add(time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	got, err := repo.GetByUserAndDate(ctx, "EMP-2", "2025-06-15")
	require.NoError(t, err)
	require.NotNil(t, got.CheckOutTime)
	assert.Equal(t, checkOut, *got.CheckOutTime)

	err = repo.SetCheckOut(ctx, "ffffffffffffffffffffffff", checkOut)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_Lists(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)

	base := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	fixtures := []attendance.Attendance{
		newAttendance("EMP-3", "2025-06-30", base, attendance.StatusPresent),
		newAttendance("EMP-4", "2025-06-30", base.Add(time.Hour), attendance.StatusLate),
		newAttendance("EMP-3", "2025-06-01", base.AddDate(0, 0, -29), attendance.StatusPresent),
		newAttendance("EMP-3", "2025-07-01", base.AddDate(0, 0, 1), attendance.StatusPresent),
		newAttendance("EMP-3", "2025-05-31", base.AddDate(0, 0, -30), attendance.StatusPresent),
	}
	for _, a := range fixtures {
		_, err := repo.InsertIfAbsent(ctx, a)
		require.NoError(t, err)
	}

	byDate, err := repo.ListByDate(ctx, "2025-06-30")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "EMP-4", byDate[0].UserID, "newest check-in first")

	inRange, err := repo.ListByUserAndRange(ctx, "EMP-3", "2025-06-01", "2025-07-01")
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	byMonth, err := repo.ListByUserAndMonth(ctx, "EMP-3", "2025-06")
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	empty, err := repo.ListByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
