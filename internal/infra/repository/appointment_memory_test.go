package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/models"
)

func stored(t *testing.T, repo *AppointmentMemoryRepository) int {
	t.Helper()
	all, err := repo.ListAppointments(context.Background(), "")
	require.NoError(t, err)
	return len(all)
}

func newAppt(id, clinician string, start time.Time) *models.Appointment {
	return &models.Appointment{
		ID:          id,
		ClinicianID: clinician,
		PatientID:   "p-1",
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      string(domain.StatusScheduled),
	}
}

func TestMemoryRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("b", "c-1", base.Add(2*time.Hour))))
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("a", "c-1", base)))
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("z", "c-2", base)))

	all, err := repo.ListAppointments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "a", "z"}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListAppointments(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestMemoryRepositoryPeriodIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("midnight", "c-1", day)))
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("next", "c-1", day.AddDate(0, 0, 1))))

	got, err := repo.ListAppointmentsForPeriod(ctx, "c-1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "midnight", got[0].ID)
}

func TestMemoryRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateAppointment(ctx, newAppt("a", "c-1", start)))

	edited := newAppt("a", "c-1", start.Add(time.Hour))
	edited.Title = "moved"
	require.NoError(t, repo.UpdateAppointment(ctx, edited))

	got, err := repo.GetAppointment(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "moved", got.Title)
	assert.Equal(t, start.Add(time.Hour), got.StartTime)

	err = repo.UpdateAppointment(ctx, newAppt("missing", "c-1", start))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, stored(t, repo))
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	ap := newAppt("a", "c-1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.CreateAppointment(ctx, ap))
	ap.Title = "mutated after create"

	got, err := repo.GetAppointment(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.Title)

	got.Title = "mutated after get"
	again, _ := repo.GetAppointment(ctx, "a")
	assert.Empty(t, again.Title)
}

func TestMemoryRepositoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.CreateAppointment(ctx, newAppt(fmt.Sprintf("id-%d", i), "c-1", start))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, stored(t, repo))
}
