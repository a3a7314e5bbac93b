package appointment

import (
	"context"

	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	clinicianID string,
	appointmentID string,
) (*models.Appointment, error) {
	return getOwned(ctx, uc.repo, clinicianID, appointmentID)
}
