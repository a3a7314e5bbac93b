package dto

import (
	"time"

	"github.com/rehabflow/care-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	ClinicianID string    `json:"clinician_id"`
	StartTime   time.Time `json:"start"`
	EndTime     time.Time `json:"end"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Title       string    `json:"title,omitempty"`
}

func FromAppointments(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			PatientID:   ap.PatientID,
			ClinicianID: ap.ClinicianID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			Type:        ap.Type,
			Title:       ap.Title,
		})
	}
	return out
}
