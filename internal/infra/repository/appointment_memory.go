package repository

import (
	"context"
	"sync"
	"time"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// AppointmentMemoryRepository keeps appointments in process memory.
// Rows are copied on the way in and out so callers never share storage.
type AppointmentMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Appointment
	order []string
	now   func() time.Time
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		byID: make(map[string]*models.Appointment),
		now:  time.Now,
	}
}

func (r *AppointmentMemoryRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *AppointmentMemoryRepository) ListAppointments(
	ctx context.Context,
	clinicianID string,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Appointment, 0, len(r.order))
	for _, id := range r.order {
		ap := r.byID[id]
		if clinicianID != "" && ap.ClinicianID != clinicianID {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicianID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Appointment
	for _, id := range r.order {
		ap := r.byID[id]
		if clinicianID != "" && ap.ClinicianID != clinicianID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *AppointmentMemoryRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	cp := *ap
	if _, exists := r.byID[ap.ID]; !exists {
		r.order = append(r.order, ap.ID)
	}
	r.byID[ap.ID] = &cp
	return nil
}

// UpdateAppointment is last-write-wins; concurrent edits to one id are not detected.
func (r *AppointmentMemoryRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}

	ap.CreatedAt = current.CreatedAt
	ap.UpdatedAt = r.now()

	cp := *ap
	r.byID[ap.ID] = &cp
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
