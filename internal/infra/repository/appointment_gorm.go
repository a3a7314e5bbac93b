package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/httperr"
	"github.com/rehabflow/care-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// insertion order
const orderCreated = "created_at ASC, id ASC"

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	clinicianID string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if clinicianID != "" {
		q = q.Where("clinician_id = ?", clinicianID)
	}

	var apps []models.Appointment
	if err := q.Order(orderCreated).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicianID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", start, end)
	if clinicianID != "" {
		q = q.Where("clinician_id = ?", clinicianID)
	}

	var apps []models.Appointment
	if err := q.Order(orderCreated).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapWriteError(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(ap)
	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapWriteError turns the appointments_no_overlap exclusion constraint
// into the same time_conflict the in-process overlap policy reports.
func mapWriteError(err error) error {
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
